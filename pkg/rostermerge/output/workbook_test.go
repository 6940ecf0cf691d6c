package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	grid := &models.UnifiedGrid{
		Header: []string{"registration_1", "name_1", "name_2", "status_1"},
		Rows: [][]interface{}{
			{int64(1001), "Alaoui", "Ahmed", "Actif"},
			{nil, "Bennani", nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
		Counts: models.FieldCounts{1, 2, 0, 1},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, grid, ""); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to open written workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != DefaultSheetName {
		t.Fatalf("Expected a single %q sheet, got %v", DefaultSheetName, sheets)
	}

	rows, err := f.GetRows(DefaultSheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i, h := range grid.Header {
		if rows[0][i] != h {
			t.Errorf("header %d = %q, expected %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "1001" || rows[1][3] != "Actif" {
		t.Errorf("Unexpected first data row: %v", rows[1])
	}
	if rows[2][0] != "" || rows[2][1] != "Bennani" || rows[2][2] != "" {
		t.Errorf("Unexpected second data row: %v", rows[2])
	}

	raw, err := f.GetCellValue(DefaultSheetName, "D3", excelize.Options{RawCellValue: true})
	if err != nil || raw != "45306" {
		t.Errorf("Expected date serial 45306 in D3, got %q (%v)", raw, err)
	}
}

func TestWriteWorkbookCustomSheetName(t *testing.T) {
	grid := &models.UnifiedGrid{Header: []string{"name_1"}}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, grid, "Roster"); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to open written workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Roster" {
		t.Errorf("Expected a single Roster sheet, got %v", sheets)
	}
}

func TestWriteWorkbookNilGrid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil, ""); err == nil {
		t.Error("Expected an error for a nil grid")
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(map[string]int{"rows": 2}, false)
	if err != nil || string(data) != `{"rows":2}` {
		t.Errorf("ToJSON = %s (%v)", data, err)
	}

	pretty, err := ToJSON(map[string]int{"rows": 2}, true)
	if err != nil || string(pretty) != "{\n  \"rows\": 2\n}" {
		t.Errorf("ToJSON pretty = %s (%v)", pretty, err)
	}
}
