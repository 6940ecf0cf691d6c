package parser

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads every sheet of f, in workbook order. Sheets that fail to
// read become empty grids; their errors are returned keyed by sheet name.
func ReadWorkbook(f *excelize.File) (*models.Workbook, map[string]error) {
	wb := &models.Workbook{BookName: filepath.Base(f.Path)}
	if f.Path == "" {
		wb.BookName = ""
	}
	failed := make(map[string]error)

	date1904 := uses1904(f)
	for _, sheetName := range f.GetSheetList() {
		g, err := readGrid(f, sheetName, date1904)
		if err != nil {
			failed[sheetName] = err
			g = models.NewGrid(sheetName)
		}
		wb.Sheets = append(wb.Sheets, g)
	}

	return wb, failed
}

// ReadGrid reads a single sheet into a grid of typed cells.
func ReadGrid(f *excelize.File, sheetName string) (*models.Grid, error) {
	return readGrid(f, sheetName, uses1904(f))
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

func readGrid(f *excelize.File, sheetName string, date1904 bool) (*models.Grid, error) {
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	g := models.NewGrid(sheetName)
	for rowIdx, row := range raw {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, rawValue := range row {
			if rawValue == "" {
				continue
			}
			colNum := colIdx + 1
			cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				continue
			}

			display := rawValue
			if rowIdx < len(formatted) && colIdx < len(formatted[rowIdx]) {
				display = formatted[rowIdx][colIdx]
			}

			g.Set(rowNum, colNum, models.Cell{
				V: typedValue(f, sheetName, cellName, rawValue, date1904),
				W: display,
			})
		}
	}

	// The declared dimension may be stale; it only ever widens the range.
	if g.Range != nil {
		if dim, err := f.GetSheetDimension(sheetName); err == nil && dim != "" {
			if declared, err := parseRange(dim); err == nil {
				g.Extend(*declared)
			}
		}
	}

	return g, nil
}

// typedValue converts a raw cell string into a Go value according to the
// cell type and number format. Anything that cannot be interpreted stays text.
func typedValue(f *excelize.File, sheetName, cellName, raw string, date1904 bool) interface{} {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString, excelize.CellTypeError:
		return raw
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
		return raw
	}

	// Numbers, formulas with cached results and untyped cells.
	value := parseValue(raw)
	var serial float64
	switch n := value.(type) {
	case int64:
		serial = float64(n)
	case float64:
		serial = n
	default:
		return value
	}
	if isDateCell(f, sheetName, cellName) {
		if t, err := excelize.ExcelDateToTime(serial, date1904); err == nil {
			return t
		}
	}
	return value
}

func isDateCell(f *excelize.File, sheetName, cellName string) bool {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateLayout(*style.CustomNumFmt)
	}
	return isDateFormat(style.NumFmt)
}

func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 22, 27, 30, 36, 45, 46, 47, 50, 57:
		return true
	}
	return false
}

// isDateLayout reports whether a custom number format renders a date.
// Quoted literals and bracketed sections (colors, locales) are ignored.
func isDateLayout(layout string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(layout) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	return strings.ContainsAny(s, "dy") || strings.Contains(s, "mmm")
}
