package models

// Table is an ordered set of uniquely named columns and ordered rows.
// Every row holds exactly len(Columns) cells.
type Table struct {
	// Columns are the header names in output order.
	Columns []string
	// Rows are the data rows; row order is preserved on copy.
	Rows [][]Cell
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AppendRow adds a row, padding with empty cells or truncating to the column count.
func (t *Table) AppendRow(cells ...Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]Cell, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	cells := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells, true
}

// SetColumn replaces the named column's cells, appending the column at the end
// when it does not exist yet. len(cells) must equal the row count.
func (t *Table) SetColumn(name string, cells []Cell) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], Empty())
		}
	}
	for i := range t.Rows {
		if i < len(cells) {
			t.Rows[i][idx] = cells[i]
		}
	}
}
