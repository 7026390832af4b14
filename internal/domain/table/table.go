package table

import (
	"errors"
	"fmt"
)

var ErrMalformedRow = errors.New("malformed row")

// Cell is a single value. Valid is false for null or missing cells.
type Cell struct {
	Value string
	Valid bool
}

func Text(value string) Cell {
	return Cell{Value: value, Valid: true}
}

// Null is the missing cell.
var Null = Cell{}

// String returns the cell value, or "" when the cell is null.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Row holds the cells of one record in column order. Err is set when the
// source record could not be read; its cells are whatever could be recovered.
type Row struct {
	Cells []Cell
	Err   error
}

func NewRow(values ...string) Row {
	cells := make([]Cell, 0, len(values))
	for _, value := range values {
		cells = append(cells, Text(value))
	}
	return Row{Cells: cells}
}

// MalformedRow marks a record that could not be read.
func MalformedRow(reason error, cells ...Cell) Row {
	return Row{Cells: cells, Err: fmt.Errorf("%w: %v", ErrMalformedRow, reason)}
}

// Table is an ordered list of rows with named columns. Build it with New so
// column lookups are indexed; a Table is safe for concurrent reads.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

func New(columns []string, rows ...Row) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the first column called name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.index == nil {
		for i, column := range t.Columns {
			if column == name {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := t.index[name]
	return i, ok
}

// Lookup returns the cell of row i under column. Unknown columns and cells
// past the end of a short row are null. A malformed row returns its error.
func (t *Table) Lookup(i int, column string) (Cell, error) {
	if i < 0 || i >= len(t.Rows) {
		return Null, fmt.Errorf("row %d out of range", i)
	}
	row := t.Rows[i]
	if row.Err != nil {
		return Null, row.Err
	}
	if column == "" {
		return Null, nil
	}
	col, ok := t.ColumnIndex(column)
	if !ok || col >= len(row.Cells) {
		return Null, nil
	}
	return row.Cells[col], nil
}

// WithLeadingColumn returns a new table with name inserted as the first
// column. t is left unchanged; values must have one entry per row.
func (t *Table) WithLeadingColumn(name string, values []Cell) (*Table, error) {
	if len(values) != t.Len() {
		return nil, fmt.Errorf("leading column %q has %d values for %d rows", name, len(values), t.Len())
	}

	columns := make([]string, 0, len(t.Columns)+1)
	columns = append(columns, name)
	columns = append(columns, t.Columns...)

	rows := make([]Row, 0, t.Len())
	for i, row := range t.Rows {
		cells := make([]Cell, 0, len(t.Columns)+1)
		cells = append(cells, values[i])
		cells = append(cells, row.Cells...)
		for len(cells) < len(columns) {
			cells = append(cells, Null)
		}
		rows = append(rows, Row{Cells: cells, Err: row.Err})
	}

	return New(columns, rows...), nil
}

// Values returns row i as strings, one per column, with nulls as "".
func (t *Table) Values(i int) []string {
	out := make([]string, len(t.Columns))
	for col := range t.Columns {
		if col < len(t.Rows[i].Cells) {
			out[col] = t.Rows[i].Cells[col].String()
		}
	}
	return out
}
