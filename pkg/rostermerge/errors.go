package rostermerge

import (
	"errors"
	"fmt"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/merger"
)

// ErrInputMissing indicates that no input was supplied or the file does not exist.
var ErrInputMissing = errors.New("input missing")

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoTablesFound indicates that no header row matched in any sheet.
var ErrNoTablesFound = merger.ErrNoTablesFound

// ErrSerialization indicates the output workbook could not be encoded.
var ErrSerialization = errors.New("failed to encode output workbook")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "cells", "output"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
