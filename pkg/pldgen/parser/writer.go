package parser

import (
	"io"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

const defaultSheet = "Sheet1"

// Write serializes wb as xlsx, one sheet per table in workbook order. Each sheet starts
// with a bold, bordered header row; null cells are left blank.
func Write(wb *models.Workbook, w io.Writer) error {
	names := wb.Names()
	if len(names) == 0 {
		return errors.New("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return errors.Errorf("creating header style: %w", err)
	}

	for i, name := range names {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return errors.Errorf("naming sheet %q: %w", name, err)
			}
			continue
		}
		if _, err := f.NewSheet(name); err != nil {
			return errors.Errorf("creating sheet %q: %w", name, err)
		}
	}

	for _, name := range names {
		table, _ := wb.Sheet(name)
		if err := writeTable(f, name, table, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return errors.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table *models.Table, headerStyle int) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return errors.Errorf("opening sheet %q: %w", sheet, err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: col}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Errorf("writing header of %q: %w", sheet, err)
	}

	for rowIdx, row := range table.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cell.Value()
		}
		ref, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return errors.Errorf("row reference: %w", err)
		}
		if err := sw.SetRow(ref, values); err != nil {
			return errors.Errorf("writing row %d of %q: %w", rowIdx+2, sheet, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Errorf("flushing sheet %q: %w", sheet, err)
	}
	return nil
}
