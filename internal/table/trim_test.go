package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_TrimText(t *testing.T) {
	tbl, err := New(
		&Column{Name: "n", Dtype: Int64, Values: []Value{Int(1), Int(2)}},
		&Column{Name: "s", Dtype: Object, Values: []Value{Text(" a\t"), Missing()}},
		&Column{Name: "u", Dtype: Object, Values: []Value{Text("b"), Text(" c ")}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.TrimText())

	s, _ := tbl.Column("s")
	assert.Equal(t, []Value{Text("a"), Missing()}, s.Values)
	u, _ := tbl.Column("u")
	assert.Equal(t, []Value{Text("b"), Text("c")}, u.Values)
	n, _ := tbl.Column("n")
	assert.Equal(t, []Value{Int(1), Int(2)}, n.Values)

	assert.Equal(t, 0, tbl.TrimText(), "second pass changes nothing")
}

func TestTable_TrimText_WhitespaceOnlyCell(t *testing.T) {
	tbl, err := New(&Column{Name: "s", Dtype: Object, Values: []Value{Text("   "), Text("x")}})
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.TrimText())
	assert.Equal(t, Text(""), tbl.Value(0, 0))
}

func TestNew(t *testing.T) {
	_, err := New(
		&Column{Name: "a", Values: []Value{Int(1)}},
		&Column{Name: "b", Values: []Value{}},
	)
	assert.ErrorContains(t, err, "has 0 rows")

	_, err = New(
		&Column{Name: "a", Values: []Value{Int(1)}},
		&Column{Name: "a", Values: []Value{Int(2)}},
	)
	assert.ErrorContains(t, err, "duplicate column")

	tbl, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumColumns())
}

func TestTable_NumericColumns(t *testing.T) {
	tbl, err := New(
		&Column{Name: "i", Dtype: Int64, Values: []Value{Int(1)}},
		&Column{Name: "s", Dtype: Object, Values: []Value{Text("x")}},
		&Column{Name: "b", Dtype: BoolDtype, Values: []Value{Bool(true)}},
		&Column{Name: "f", Dtype: Float64, Values: []Value{Float(1)}},
	)
	require.NoError(t, err)

	var names []string
	for _, c := range tbl.NumericColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"i", "f"}, names)
	assert.Equal(t, "0", tbl.RowLabel(0))
}
