// Package rostermerge consolidates personnel roster tables scattered across
// the sheets of an xlsx workbook into a single normalized sheet.
package rostermerge

import (
	"fmt"
	"strings"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/output"
)

// Mode represents the table detection mode.
type Mode string

const (
	// ModeGrouped assigns columns to field groups by their header text, so
	// tables may have any number of columns per group.
	ModeGrouped Mode = "grouped"
	// ModeFixed anchors a 16-column window at each header cell and splits it
	// 3/4/5/4 across the field groups.
	ModeFixed Mode = "fixed"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGrouped:
		return ModeGrouped, nil
	case ModeFixed:
		return ModeFixed, nil
	}
	return "", fmt.Errorf("invalid mode: %s (must be grouped or fixed)", s)
}

// ParseLabels resolves a label set name: "default" or "legacy".
func ParseLabels(s string) (models.FieldLabels, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return models.DefaultFieldLabels, nil
	case "legacy":
		return models.LegacyFieldLabels, nil
	}
	return models.FieldLabels{}, fmt.Errorf("invalid labels: %s (must be default or legacy)", s)
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the detection mode (grouped, fixed).
	Mode Mode
	// Phrases overrides the header phrase table in grouped mode.
	// If nil, parser.DefaultPhrases is used.
	Phrases models.PhraseTable
	// Labels are the header prefixes of the output columns.
	// If zero, models.DefaultFieldLabels is used.
	Labels models.FieldLabels
	// SheetName names the output sheet. If empty, "Combined" is used.
	SheetName string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeGrouped,
		Labels:    models.DefaultFieldLabels,
		SheetName: output.DefaultSheetName,
	}
}

func (o Options) labels() models.FieldLabels {
	if o.Labels == (models.FieldLabels{}) {
		return models.DefaultFieldLabels
	}
	return o.Labels
}

func (o Options) sheetName() string {
	if o.SheetName == "" {
		return output.DefaultSheetName
	}
	return o.SheetName
}
