// Package parser turns workbook sheets into grids and finds roster tables in them.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

// Normalize returns the underlying value of a grid entry. Structured cells
// yield their raw value, bare values are returned as-is and absent entries
// yield nil.
func Normalize(entry interface{}) interface{} {
	switch e := entry.(type) {
	case nil:
		return nil
	case models.Cell:
		return e.V
	case *models.Cell:
		if e == nil {
			return nil
		}
		return e.V
	default:
		return e
	}
}

// TrimmedString returns the string form of an entry's value with surrounding
// whitespace removed, or "" when the entry is absent.
func TrimmedString(entry interface{}) string {
	return strings.TrimSpace(formatValue(Normalize(entry)))
}

// formatValue renders a normalized value as text. Unknown types render empty.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	case interface{ String() string }:
		return t.String()
	default:
		return ""
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
