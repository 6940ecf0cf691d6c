package merger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

func extraction(sheet string, cols [models.NumFieldGroups][]int, rows ...[]interface{}) models.TableExtraction {
	if rows == nil {
		rows = [][]interface{}{}
	}
	return models.TableExtraction{SheetName: sheet, HeaderRow: 1, Columns: cols, Rows: rows}
}

func TestMergeNoTables(t *testing.T) {
	for _, input := range [][]models.TableExtraction{nil, {}} {
		grid, err := Merge(input)
		if !errors.Is(err, ErrNoTablesFound) {
			t.Errorf("Merge(%v) error = %v, expected ErrNoTablesFound", input, err)
		}
		if grid != nil {
			t.Errorf("Merge(%v) returned a grid on failure", input)
		}
	}
}

func TestMergePadsNarrowerGroups(t *testing.T) {
	narrow := extraction("A", [models.NumFieldGroups][]int{nil, {1, 2}, nil, nil},
		[]interface{}{"Alaoui", "Ahmed"},
	)
	wide := extraction("B", [models.NumFieldGroups][]int{nil, {1, 2, 3, 4}, nil, nil},
		[]interface{}{"Ben", "Ali", "Sara", "Amal"},
	)

	grid, err := Merge([]models.TableExtraction{narrow, wide})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	expectedHeader := []string{"name_1", "name_2", "name_3", "name_4"}
	if !reflect.DeepEqual(grid.Header, expectedHeader) {
		t.Errorf("Header = %v, expected %v", grid.Header, expectedHeader)
	}

	expectedRows := [][]interface{}{
		{"Alaoui", "Ahmed", nil, nil},
		{"Ben", "Ali", "Sara", "Amal"},
	}
	if !reflect.DeepEqual(grid.Rows, expectedRows) {
		t.Errorf("Rows = %v, expected %v", grid.Rows, expectedRows)
	}
}

func TestMergeTwoSheets(t *testing.T) {
	sheetA := extraction("A", [models.NumFieldGroups][]int{{1}, {2, 3}, nil, nil},
		[]interface{}{int64(1001), "Alaoui", "Ahmed"},
		[]interface{}{int64(1002), "Bennani", "Sara"},
	)
	sheetB := extraction("B", [models.NumFieldGroups][]int{nil, {1}, nil, {2, 3, 4}},
		[]interface{}{"Idrissi Karim", "Actif", nil, "CDD"},
	)

	grid, err := Merge([]models.TableExtraction{sheetA, sheetB})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	expectedHeader := []string{"registration_1", "name_1", "name_2", "status_1", "status_2", "status_3"}
	if !reflect.DeepEqual(grid.Header, expectedHeader) {
		t.Errorf("Header = %v, expected %v", grid.Header, expectedHeader)
	}
	if got, want := grid.Counts, (models.FieldCounts{1, 2, 0, 3}); got != want {
		t.Errorf("Counts = %v, expected %v", got, want)
	}

	expectedRows := [][]interface{}{
		{int64(1001), "Alaoui", "Ahmed", nil, nil, nil},
		{int64(1002), "Bennani", "Sara", nil, nil, nil},
		{nil, "Idrissi Karim", nil, "Actif", nil, "CDD"},
	}
	if !reflect.DeepEqual(grid.Rows, expectedRows) {
		t.Errorf("Rows = %v, expected %v", grid.Rows, expectedRows)
	}
}

func TestMergeRowLengthInvariant(t *testing.T) {
	extractions := []models.TableExtraction{
		extraction("A", [models.NumFieldGroups][]int{{1}, {2}, {3}, {4}},
			[]interface{}{1, 2, 3, 4}),
		extraction("A", [models.NumFieldGroups][]int{{1, 2}, nil, {3, 4, 5}, nil},
			[]interface{}{1, 2, 3, 4, 5}, []interface{}{6, 7, 8, 9, 10}),
		extraction("B", [models.NumFieldGroups][]int{nil, {1, 2, 3}, nil, {4, 5}}),
		// A short row degrades to nil values instead of shifting groups.
		extraction("C", [models.NumFieldGroups][]int{{1}, {2}, nil, nil},
			[]interface{}{"only registration"}),
	}

	grid, err := Merge(extractions)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	width := 2 + 3 + 3 + 2
	if len(grid.Header) != width {
		t.Errorf("Header length %d, expected %d", len(grid.Header), width)
	}
	if len(grid.Rows) != 4 {
		t.Errorf("Expected 4 rows, got %d", len(grid.Rows))
	}
	for i, row := range grid.Rows {
		if len(row) != width {
			t.Errorf("row %d length %d, expected %d", i, len(row), width)
		}
	}
	if last := grid.Rows[3]; last[0] != "only registration" || last[2] != nil {
		t.Errorf("Unexpected short-row reshape: %v", last)
	}
}

func TestMergeLabeledLegacy(t *testing.T) {
	ex := extraction("A", [models.NumFieldGroups][]int{{1}, {2}, {3}, {4}})

	grid, err := MergeLabeled([]models.TableExtraction{ex}, models.LegacyFieldLabels)
	if err != nil {
		t.Fatalf("MergeLabeled failed: %v", err)
	}

	expected := []string{"immatricule_1", "nom_1", "nombre_1", "situation_1"}
	if !reflect.DeepEqual(grid.Header, expected) {
		t.Errorf("Header = %v, expected %v", grid.Header, expected)
	}
	if len(grid.Rows) != 0 {
		t.Errorf("Expected header-only grid, got %d rows", len(grid.Rows))
	}
}

func TestSummarize(t *testing.T) {
	cols := [models.NumFieldGroups][]int{nil, {1}, nil, nil}
	extractions := []models.TableExtraction{
		extraction("Janvier", cols, []interface{}{"a"}),
		extraction("Janvier", cols, []interface{}{"b"}, []interface{}{"c"}, []interface{}{"d"}),
		extraction("Février", cols, []interface{}{"e"}, []interface{}{"f"}),
	}

	s := Summarize(extractions)
	if s.Tables != 3 || s.Rows != 6 {
		t.Errorf("Summary tables/rows = %d/%d, expected 3/6", s.Tables, s.Rows)
	}
	if !reflect.DeepEqual(s.Sheets, []string{"Janvier", "Février"}) {
		t.Errorf("Sheets = %v", s.Sheets)
	}
	expected := RowStats{Min: 1, Max: 3, Mean: 2, Median: 2}
	if s.RowsPerTable != expected {
		t.Errorf("RowsPerTable = %+v, expected %+v", s.RowsPerTable, expected)
	}

	if empty := Summarize(nil); empty.Tables != 0 || empty.Rows != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}
