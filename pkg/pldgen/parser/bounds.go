package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// findDataBounds finds the bounding box of non-empty cells (0-based, inclusive).
// All four values are -1 for a sheet without data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// dataRange renders the bounds in Excel range notation (e.g. "A1:D10").
func dataRange(minRow, maxRow, minCol, maxCol int) string {
	if minRow < 0 {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
