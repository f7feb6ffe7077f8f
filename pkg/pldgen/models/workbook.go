package models

// Workbook is an ordered mapping of sheet name to Table.
type Workbook struct {
	names  []string
	sheets map[string]*Table
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Table)}
}

// Add stores a table under name. Re-adding a name replaces the table
// but keeps its original position.
func (w *Workbook) Add(name string, t *Table) {
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = t
}

// Sheet returns the named table.
func (w *Workbook) Sheet(name string) (*Table, bool) {
	t, ok := w.sheets[name]
	return t, ok
}

// Names returns the sheet names in insertion order.
func (w *Workbook) Names() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Len returns the number of sheets.
func (w *Workbook) Len() int {
	return len(w.names)
}
