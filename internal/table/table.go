package table

import (
	"fmt"
	"strconv"
)

// Dtype is the inferred type of a column
type Dtype uint8

const (
	Object Dtype = iota
	Int64
	Float64
	BoolDtype
)

func (d Dtype) String() string {
	switch d {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case BoolDtype:
		return "bool"
	default:
		return "object"
	}
}

// IsNumeric reports whether columns of this dtype are summarized
func (d Dtype) IsNumeric() bool {
	return d == Int64 || d == Float64
}

// Column is a named, homogeneously typed sequence of cells
type Column struct {
	Name   string
	Dtype  Dtype
	Values []Value
}

// Len returns the number of cells in the column
func (c *Column) Len() int { return len(c.Values) }

// NonMissing returns the numeric values of c with missing cells dropped.
// It returns nil for non-numeric columns.
func (c *Column) NonMissing() []float64 {
	if !c.Dtype.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.Float64(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Table is an ordered collection of equal-length named columns
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New assembles a table from columns. Every column must have the same
// length and a unique name.
func New(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.index[c.Name] = i
	}
	return t, nil
}

// NumRows returns the row count
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the column count
func (t *Table) NumColumns() int { return len(t.columns) }

// Columns returns the columns in order
func (t *Table) Columns() []*Column { return t.columns }

// Column looks a column up by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the Int64 and Float64 columns in order
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.columns {
		if c.Dtype.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}

// Value returns the cell at (row, col)
func (t *Table) Value(row, col int) Value {
	return t.columns[col].Values[row]
}

// RowLabel returns the positional index of row
func (t *Table) RowLabel(row int) string {
	return strconv.Itoa(row)
}
