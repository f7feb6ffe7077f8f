// Package parser reads rules workbooks into tables and writes output workbooks.
package parser

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// Source is an opened input workbook.
type Source struct {
	f *excelize.File
}

// Open reads an xlsx container from r.
func Open(r io.Reader) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrMalformedWorkbook, err)
	}
	if len(f.GetSheetList()) == 0 {
		_ = f.Close()
		return nil, errors.Errorf("%w: no sheets", ErrMalformedWorkbook)
	}
	return &Source{f: f}, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.f.Close()
}

// SheetNames returns the sheet names in workbook order.
func (s *Source) SheetNames() []string {
	return s.f.GetSheetList()
}

// HasSheet reports whether a sheet with exactly this name exists.
// Sheet lookup is case sensitive.
func (s *Source) HasSheet(name string) bool {
	for _, n := range s.f.GetSheetList() {
		if n == name {
			return true
		}
	}
	return false
}

// ReadSheet reads the named sheet as a table. The first non-empty row is the header;
// leading blank rows and columns are skipped.
func ReadSheet(ctx context.Context, src *Source, name string) (*models.Table, error) {
	if !src.HasSheet(name) {
		return nil, &SheetNotFoundError{Sheet: name}
	}

	formatted, err := src.f.GetRows(name)
	if err != nil {
		return nil, errors.Errorf("reading sheet %q: %w", name, err)
	}
	raw, err := src.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Errorf("reading sheet %q: %w", name, err)
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(raw)
	if minRow < 0 {
		zerolog.Ctx(ctx).Debug().Str("sheet", name).Msg("sheet has no data")
		return models.NewTable(), nil
	}
	zerolog.Ctx(ctx).Debug().
		Str("sheet", name).
		Str("range", dataRange(minRow, maxRow, minCol, maxCol)).
		Msg("reading sheet")

	header := make([]string, 0, maxCol-minCol+1)
	for col := minCol; col <= maxCol; col++ {
		header = append(header, cellAt(formatted, minRow, col))
	}
	table := models.NewTable(uniqueColumns(header)...)

	styles := newDateStyles(src.f)
	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		cells := make([]models.Cell, 0, len(table.Columns))
		for col := minCol; col <= maxCol; col++ {
			cell, err := src.readCell(styles, name, rowIdx, col, cellAt(raw, rowIdx, col), cellAt(formatted, rowIdx, col))
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}
		table.AppendRow(cells...)
	}

	return table, nil
}

// readCell converts one stored value using its cell type. Text stays text even
// when it looks numeric; numbers whose number format is a date keep their display text.
func (s *Source) readCell(styles *dateStyles, sheet string, rowIdx, colIdx int, raw, formatted string) (models.Cell, error) {
	if raw == "" {
		return models.Empty(), nil
	}
	ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return models.Empty(), errors.Errorf("cell reference: %w", err)
	}
	typ, err := s.f.GetCellType(sheet, ref)
	if err != nil {
		return models.Empty(), errors.Errorf("cell type %s!%s: %w", sheet, ref, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return models.String("TRUE"), nil
		}
		return models.String("FALSE"), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		idx, err := s.f.GetCellStyle(sheet, ref)
		if err != nil {
			return models.Empty(), errors.Errorf("cell style %s!%s: %w", sheet, ref, err)
		}
		return parseValue(raw, formatted, styles.isDate(idx)), nil
	case excelize.CellTypeDate:
		return models.String(formatted), nil
	default:
		return models.String(raw), nil
	}
}

// parseValue turns a numeric cell's stored value into a Number unless the cell is
// formatted as a date or time.
func parseValue(raw, formatted string, date bool) models.Cell {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.String(formatted)
	}
	if date && formatted != "" {
		return models.String(formatted)
	}
	return models.Number(f)
}

// uniqueColumns names blank headers "Unnamed: <i>" and suffixes repeats with ".1", ".2".
func uniqueColumns(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int)
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = h + "." + strconv.Itoa(counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}
