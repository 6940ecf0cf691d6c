package models

// TableExtraction is one table detected below a header row.
type TableExtraction struct {
	// SheetName is the sheet the table was found on.
	SheetName string `json:"sheet_name"`
	// HeaderRow is the 1-based row index of the header.
	HeaderRow int `json:"header_row"`
	// Columns lists the 1-based column indexes assigned to each field group,
	// left to right. A column may appear under several groups.
	Columns [NumFieldGroups][]int `json:"columns"`
	// Rows holds the data rows. Each row concatenates the values read from
	// Columns in group order, so len(row) == Counts().Total().
	Rows [][]interface{} `json:"rows"`
}

// Counts returns the number of columns assigned to each group.
func (t *TableExtraction) Counts() FieldCounts {
	var c FieldCounts
	for i, cols := range t.Columns {
		c[i] = len(cols)
	}
	return c
}

// UnifiedGrid is the merged output: one header row and padded data rows.
type UnifiedGrid struct {
	// Header holds the synthesized column labels.
	Header []string `json:"header"`
	// Rows holds data rows, each len(Header) long. Nil marks padding or
	// an empty source cell.
	Rows [][]interface{} `json:"rows"`
	// Counts holds the per-group maximum column counts used for padding.
	Counts FieldCounts `json:"counts"`
}
