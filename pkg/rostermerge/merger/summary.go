package merger

import (
	"github.com/montanaflynn/stats"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

// Summary describes the outcome of one extraction run.
type Summary struct {
	// Tables is the number of detected tables.
	Tables int `json:"tables"`
	// Rows is the number of data rows across all tables.
	Rows int `json:"rows"`
	// Sheets lists the sheets that contributed at least one table, in order.
	Sheets []string `json:"sheets,omitempty"`
	// RowsPerTable describes the distribution of table lengths.
	RowsPerTable RowStats `json:"rows_per_table"`
}

// RowStats holds distribution statistics of data rows per table.
type RowStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize computes a Summary for the given extractions.
func Summarize(extractions []models.TableExtraction) Summary {
	s := Summary{Tables: len(extractions)}
	if len(extractions) == 0 {
		return s
	}

	seen := make(map[string]bool)
	lengths := make(stats.Float64Data, 0, len(extractions))
	for i := range extractions {
		n := len(extractions[i].Rows)
		s.Rows += n
		lengths = append(lengths, float64(n))
		if name := extractions[i].SheetName; !seen[name] {
			seen[name] = true
			s.Sheets = append(s.Sheets, name)
		}
	}

	// Errors only occur on empty input, which is excluded above.
	s.RowsPerTable.Min, _ = lengths.Min()
	s.RowsPerTable.Max, _ = lengths.Max()
	s.RowsPerTable.Mean, _ = lengths.Mean()
	s.RowsPerTable.Median, _ = lengths.Median()

	return s
}
