package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/rostermerge-go/internal/logger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "MAX_UPLOAD_MB", "MAX_CONCURRENT_EXTRACTIONS",
	"EXTRACT_TIMEOUT", "EXTRACT_MODE", "OUTPUT_LABELS", "PHRASES_FILE", "OUTPUT_FILENAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, int64(50*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 4, cfg.Server.MaxConcurrent)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
	assert.Equal(t, rostermerge.ModeGrouped, cfg.Extract.Mode)
	assert.Equal(t, models.DefaultFieldLabels, cfg.Extract.Labels)
	assert.Equal(t, "combined_output.xlsx", cfg.Extract.OutputFilename)
	assert.Empty(t, cfg.Extract.PhrasesFile)
	assert.Equal(t, logger.LogLevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("MAX_CONCURRENT_EXTRACTIONS", "2")
	t.Setenv("EXTRACT_TIMEOUT", "15s")
	t.Setenv("EXTRACT_MODE", "fixed")
	t.Setenv("OUTPUT_LABELS", "legacy")
	t.Setenv("OUTPUT_FILENAME", "roster.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.GinMode)
	assert.Equal(t, int64(5*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 2, cfg.Server.MaxConcurrent)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, rostermerge.ModeFixed, cfg.Extract.Mode)
	assert.Equal(t, models.LegacyFieldLabels, cfg.Extract.Labels)
	assert.Equal(t, "roster.xlsx", cfg.Extract.OutputFilename)
	assert.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"MAX_UPLOAD_MB", "lots"},
		{"MAX_UPLOAD_MB", "0"},
		{"MAX_CONCURRENT_EXTRACTIONS", "-1"},
		{"EXTRACT_TIMEOUT", "soon"},
		{"EXTRACT_TIMEOUT", "-5s"},
		{"GIN_MODE", "production"},
		{"EXTRACT_MODE", "diagonal"},
		{"OUTPUT_LABELS", "english"},
		{"LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPhrases(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "phrases.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"registration": ["matricule"], "status": ["statut", "situation"]}`), 0o644))

	table, err := LoadPhrases(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"matricule"}, table[models.Registration])
	assert.Equal(t, []string{"statut", "situation"}, table[models.Status])
	assert.Empty(t, table[models.Name])

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"name": []}`), 0o644))
	_, err = LoadPhrases(empty)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"salary": ["salaire"]}`), 0o644))
	_, err = LoadPhrases(unknown)
	assert.Error(t, err)

	_, err = LoadPhrases(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "phrases.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": ["employé"]}`), 0o644))
	t.Setenv("PHRASES_FILE", path)
	t.Setenv("EXTRACT_MODE", "fixed")

	cfg, err := Load()
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, rostermerge.ModeFixed, opts.Mode)
	assert.Equal(t, []string{"employé"}, opts.Phrases[models.Name])
	assert.Equal(t, "Combined", opts.SheetName)
}
