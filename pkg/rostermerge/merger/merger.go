// Package merger combines table extractions from many sheets into one grid.
package merger

import (
	"errors"
	"fmt"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
)

// ErrNoTablesFound indicates that no header row matched in any sheet.
var ErrNoTablesFound = errors.New("no tables found by header names")

// Merge combines extractions under one schema labelled with
// models.DefaultFieldLabels.
func Merge(extractions []models.TableExtraction) (*models.UnifiedGrid, error) {
	return MergeLabeled(extractions, models.DefaultFieldLabels)
}

// MergeLabeled combines extractions under one schema. Each group gets as many
// columns as the widest table has for it; narrower tables are padded with nil
// at the end of that group's slice. Rows keep extraction order, then row order.
func MergeLabeled(extractions []models.TableExtraction, labels models.FieldLabels) (*models.UnifiedGrid, error) {
	if len(extractions) == 0 {
		return nil, ErrNoTablesFound
	}

	var maxCounts models.FieldCounts
	rowCount := 0
	for i := range extractions {
		maxCounts = maxCounts.Max(extractions[i].Counts())
		rowCount += len(extractions[i].Rows)
	}

	grid := &models.UnifiedGrid{
		Header: header(maxCounts, labels),
		Rows:   make([][]interface{}, 0, rowCount),
		Counts: maxCounts,
	}

	width := maxCounts.Total()
	for i := range extractions {
		counts := extractions[i].Counts()
		for _, parts := range extractions[i].Rows {
			grid.Rows = append(grid.Rows, reshape(parts, counts, maxCounts, width))
		}
	}

	return grid, nil
}

// header builds label_1..label_n for each group in order.
func header(counts models.FieldCounts, labels models.FieldLabels) []string {
	out := make([]string, 0, counts.Total())
	for _, g := range models.FieldGroups {
		for i := 1; i <= counts[g]; i++ {
			out = append(out, fmt.Sprintf("%s_%d", labels[g], i))
		}
	}
	return out
}

// reshape re-slices a flat row by its own group counts and pads every slice
// to the global maximum. Values missing from a short row become nil.
func reshape(parts []interface{}, counts, maxCounts models.FieldCounts, width int) []interface{} {
	row := make([]interface{}, 0, width)
	idx := 0
	for _, g := range models.FieldGroups {
		for i := 0; i < maxCounts[g]; i++ {
			var v interface{}
			if i < counts[g] && idx+i < len(parts) {
				v = parts[idx+i]
			}
			row = append(row, v)
		}
		idx += counts[g]
	}
	return row
}
