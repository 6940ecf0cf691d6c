// Package output serializes extraction results.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single output sheet.
const DefaultSheetName = "Combined"

// dateNumFmt is the built-in "m/d/yy h:mm" format.
const dateNumFmt = 22

// WriteWorkbook writes the grid as an xlsx workbook with a single sheet: the
// header row first, then the data rows. Nil values are left blank.
func WriteWorkbook(w io.Writer, grid *models.UnifiedGrid, sheetName string) error {
	if grid == nil {
		return fmt.Errorf("nil grid")
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if defaultSheet != sheetName {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: dateNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headerRow := make([]interface{}, len(grid.Header))
	for i, h := range grid.Header {
		headerRow[i] = h
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range grid.Rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v, dateStyle)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

func cellValue(v interface{}, dateStyle int) interface{} {
	if t, ok := v.(time.Time); ok {
		return excelize.Cell{Value: t, StyleID: dateStyle}
	}
	return v
}
