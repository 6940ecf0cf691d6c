package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"github.com/xuri/excelize/v2"
)

// parseRange parses a range reference such as "A1:K234", "$A$1:$D$10" or a
// single cell "A1". A sheet prefix ('Sheet 1'!A1:B2) is ignored.
func parseRange(ref string) (*models.Range, error) {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	// Remove $ signs
	ref = strings.ReplaceAll(ref, "$", "")
	if ref == "" {
		return nil, fmt.Errorf("empty range reference")
	}

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid range reference %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, err
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return nil, err
		}
	}

	return &models.Range{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}, nil
}
