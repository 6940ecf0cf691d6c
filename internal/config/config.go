// Package config loads the HTTP server configuration from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ukaji3/rostermerge-go/internal/logger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Extract  ExtractConfig
	LogLevel logger.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MaxUploadBytes int64
	// MaxConcurrent caps the number of conversions running at once.
	MaxConcurrent int
	// Timeout is the wall-clock budget of one conversion.
	Timeout time.Duration
}

// ExtractConfig holds table extraction settings
type ExtractConfig struct {
	Mode           rostermerge.Mode
	Labels         models.FieldLabels
	PhrasesFile    string
	OutputFilename string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server configuration: %w", err)
	}

	extractConfig, err := loadExtractConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load extract configuration: %w", err)
	}

	level, ok := logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if !ok {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", os.Getenv("LOG_LEVEL"))
	}

	return &Config{
		Server:   *serverConfig,
		Extract:  *extractConfig,
		LogLevel: level,
	}, nil
}

// Options builds extraction options, loading the phrase file if one is set.
func (c *Config) Options() (rostermerge.Options, error) {
	opts := rostermerge.DefaultOptions()
	opts.Mode = c.Extract.Mode
	opts.Labels = c.Extract.Labels

	if c.Extract.PhrasesFile != "" {
		phrases, err := LoadPhrases(c.Extract.PhrasesFile)
		if err != nil {
			return opts, err
		}
		opts.Phrases = phrases
	}
	return opts, nil
}

// LoadPhrases reads a header phrase table from a JSON file of the form
// {"registration": ["immatricul"], "name": ["nom"], ...}.
func LoadPhrases(path string) (models.PhraseTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase file: %w", err)
	}

	var table models.PhraseTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse phrase file %s: %w", path, err)
	}

	phrases := 0
	for _, list := range table {
		phrases += len(list)
	}
	if phrases == 0 {
		return nil, fmt.Errorf("phrase file %s defines no phrases", path)
	}
	return table, nil
}

func loadServerConfig() (*ServerConfig, error) {
	maxUploadMB, err := getEnvIntOrDefault("MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := getEnvIntOrDefault("MAX_CONCURRENT_EXTRACTIONS", 4)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDurationOrDefault("EXTRACT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if maxConcurrent <= 0 {
		return nil, fmt.Errorf("MAX_CONCURRENT_EXTRACTIONS must be positive")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("EXTRACT_TIMEOUT must be positive")
	}

	ginMode := getEnvOrDefault("GIN_MODE", "release")
	switch ginMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q (must be debug, release or test)", ginMode)
	}

	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "3000"),
		GinMode:        ginMode,
		MaxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
		MaxConcurrent:  maxConcurrent,
		Timeout:        timeout,
	}, nil
}

func loadExtractConfig() (*ExtractConfig, error) {
	mode, err := rostermerge.ParseMode(getEnvOrDefault("EXTRACT_MODE", string(rostermerge.ModeGrouped)))
	if err != nil {
		return nil, err
	}
	labels, err := rostermerge.ParseLabels(getEnvOrDefault("OUTPUT_LABELS", "default"))
	if err != nil {
		return nil, err
	}

	return &ExtractConfig{
		Mode:           mode,
		Labels:         labels,
		PhrasesFile:    os.Getenv("PHRASES_FILE"),
		OutputFilename: getEnvOrDefault("OUTPUT_FILENAME", "combined_output.xlsx"),
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return intValue, nil
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return duration, nil
}
