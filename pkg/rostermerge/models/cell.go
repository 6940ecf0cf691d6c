// Package models defines data structures for roster extraction.
package models

// Cell is a structured cell read from a workbook.
type Cell struct {
	// V is the raw value: string, float64, int64, bool, time.Time or nil.
	V interface{} `json:"v"`
	// W is the formatted text as displayed by the spreadsheet application.
	W string `json:"w,omitempty"`
}
