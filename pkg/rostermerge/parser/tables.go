package parser

import (
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

// TableDetectionParams holds parameters for header-grouped table detection.
type TableDetectionParams struct {
	// Classifier assigns field groups to header cells. Nil selects the
	// default phrase table.
	Classifier *Classifier
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		Classifier: NewClassifier(nil),
	}
}

// DetectTables finds every roster table in a grid.
//
// Each row whose cells classify to at least one field group is a header row.
// Every column of the range is assigned to each group its header cell
// classifies to, and data rows are read from the row below until the first
// row whose assigned cells are all empty. Scanning then continues with the
// row after the header, so a header inside a table that was just read starts
// a table of its own.
func DetectTables(g *models.Grid, params TableDetectionParams) []models.TableExtraction {
	if g == nil || g.Range == nil {
		return nil
	}
	classifier := params.Classifier
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	rng := *g.Range

	var tables []models.TableExtraction
	for r := rng.R1; r <= rng.R2; r++ {
		var cols [models.NumFieldGroups][]int
		found := false
		for c := rng.C1; c <= rng.C2; c++ {
			groups := classifier.Classify(TrimmedString(g.At(r, c)))
			for _, group := range groups.Groups() {
				cols[group] = append(cols[group], c)
				found = true
			}
		}
		if !found {
			continue
		}

		tables = append(tables, models.TableExtraction{
			SheetName: g.Name,
			HeaderRow: r,
			Columns:   cols,
			Rows:      readRows(g, cols, r+1, rng.R2),
		})
	}

	return tables
}

// WindowParams configures fixed-window table detection.
type WindowParams struct {
	// Phrases anchor a table at the first matching cell of a row segment.
	Phrases []string
	// Layout is the number of columns given to each field group; the window
	// spans Layout.Total() columns starting at the anchor cell.
	Layout models.FieldCounts
}

// DefaultWindowParams returns the 16-column window split 3/4/5/4.
func DefaultWindowParams() WindowParams {
	return WindowParams{
		Phrases: WindowHeaderPhrases(),
		Layout:  models.FieldCounts{3, 4, 5, 4},
	}
}

// DetectWindowTables finds tables by anchoring a fixed-width window at each
// header cell. After an anchor the column scan resumes past the window, so
// header cells inside it do not start overlapping tables.
func DetectWindowTables(g *models.Grid, params WindowParams) []models.TableExtraction {
	if g == nil || g.Range == nil {
		return nil
	}
	width := params.Layout.Total()
	if width <= 0 {
		return nil
	}
	phrases := foldPhrases(params.Phrases)
	rng := *g.Range

	var tables []models.TableExtraction
	for r := rng.R1; r <= rng.R2; r++ {
		for c := rng.C1; c <= rng.C2; c++ {
			text := TrimmedString(g.At(r, c))
			if text == "" || !containsAny(foldText(text), phrases) {
				continue
			}

			cols := windowColumns(c, params.Layout)
			tables = append(tables, models.TableExtraction{
				SheetName: g.Name,
				HeaderRow: r,
				Columns:   cols,
				Rows:      readRows(g, cols, r+1, rng.R2),
			})
			c += width - 1
		}
	}

	return tables
}

// windowColumns splits the columns starting at start into consecutive runs
// sized by layout.
func windowColumns(start int, layout models.FieldCounts) [models.NumFieldGroups][]int {
	var cols [models.NumFieldGroups][]int
	next := start
	for i, n := range layout {
		for j := 0; j < n; j++ {
			cols[i] = append(cols[i], next)
			next++
		}
	}
	return cols
}

// readRows reads data rows from row `from` through `to`, visiting the
// assigned columns group by group. It stops at the first row whose visited
// cells are all empty; that row is not returned.
func readRows(g *models.Grid, cols [models.NumFieldGroups][]int, from, to int) [][]interface{} {
	width := 0
	for _, list := range cols {
		width += len(list)
	}

	rows := [][]interface{}{}
	for r := from; r <= to; r++ {
		row := make([]interface{}, 0, width)
		allEmpty := true
		for _, list := range cols {
			for _, c := range list {
				entry := g.At(r, c)
				if TrimmedString(entry) != "" {
					allEmpty = false
				}
				row = append(row, Normalize(entry))
			}
		}
		if allEmpty {
			break
		}
		rows = append(rows, row)
	}
	return rows
}
