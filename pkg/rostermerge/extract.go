package rostermerge

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/merger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/output"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/parser"
	"github.com/xuri/excelize/v2"
)

// Result holds the outcome of one extraction run.
type Result struct {
	// BookName is the input file name (no path), empty for in-memory input.
	BookName string `json:"book_name,omitempty"`
	// Tables holds every detected table, in sheet order then row order.
	Tables []models.TableExtraction `json:"-"`
	// Grid is the merged output.
	Grid *models.UnifiedGrid `json:"-"`
	// Summary describes the detected tables.
	Summary merger.Summary `json:"summary"`
	// Warnings lists sheets that could not be read and were skipped.
	Warnings []*ExtractionError `json:"-"`
}

// Extract consolidates the roster tables of the workbook at path.
func Extract(path string, opts Options) (*Result, error) {
	if path == "" {
		return nil, ErrInputMissing
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file not found: %s", ErrInputMissing, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return extractFile(f, opts)
}

// ExtractBytes consolidates the roster tables of an in-memory workbook.
func ExtractBytes(data []byte, opts Options) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrInputMissing
	}
	return ExtractReader(bytes.NewReader(data), opts)
}

// ExtractReader consolidates the roster tables of a workbook read from r.
func ExtractReader(r io.Reader, opts Options) (*Result, error) {
	if r == nil {
		return nil, ErrInputMissing
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return extractFile(f, opts)
}

// Process reads a workbook from r, consolidates it and writes the combined
// workbook to w. Nothing is written when extraction fails.
func Process(r io.Reader, w io.Writer, opts Options) (*Result, error) {
	res, err := ExtractReader(r, opts)
	if err != nil {
		return nil, err
	}
	if err := res.Write(w, opts); err != nil {
		return res, err
	}
	return res, nil
}

// Write serializes the merged grid as an xlsx workbook.
func (r *Result) Write(w io.Writer, opts Options) error {
	if err := output.WriteWorkbook(w, r.Grid, opts.sheetName()); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, NewExtractionError(opts.sheetName(), "output", err))
	}
	return nil
}

// DetectTables runs table detection over every sheet, in workbook order.
func DetectTables(wb *models.Workbook, opts Options) ([]models.TableExtraction, error) {
	var tables []models.TableExtraction

	switch opts.Mode {
	case ModeFixed:
		params := parser.DefaultWindowParams()
		for _, sheet := range wb.Sheets {
			tables = append(tables, parser.DetectWindowTables(sheet, params)...)
		}
	case ModeGrouped, "":
		params := parser.TableDetectionParams{Classifier: parser.NewClassifier(opts.Phrases)}
		for _, sheet := range wb.Sheets {
			tables = append(tables, parser.DetectTables(sheet, params)...)
		}
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be grouped or fixed)", opts.Mode)
	}

	return tables, nil
}

func extractFile(f *excelize.File, opts Options) (*Result, error) {
	wb, failed := parser.ReadWorkbook(f)
	return assemble(wb, failed, opts)
}

// assemble detects and merges the tables of wb. Sheets listed in failed were
// read as empty grids and are reported as warnings.
func assemble(wb *models.Workbook, failed map[string]error, opts Options) (*Result, error) {
	res := &Result{BookName: wb.BookName}
	for _, sheet := range wb.Sheets {
		if err, ok := failed[sheet.Name]; ok {
			res.Warnings = append(res.Warnings, NewExtractionError(sheet.Name, "cells", err))
		}
	}

	tables, err := DetectTables(wb, opts)
	if err != nil {
		return nil, err
	}

	grid, err := merger.MergeLabeled(tables, opts.labels())
	if err != nil {
		return nil, err
	}

	res.Tables = tables
	res.Grid = grid
	res.Summary = merger.Summarize(tables)
	return res, nil
}
