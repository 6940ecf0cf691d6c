package models

// Workbook is the in-memory view of an input workbook.
type Workbook struct {
	// BookName is the workbook file name (no path), empty for uploads.
	BookName string `json:"book_name"`
	// Sheets holds one grid per sheet, in workbook order.
	Sheets []*Grid `json:"sheets"`
}
