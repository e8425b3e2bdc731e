// Package display prints Frames as right-aligned text grids.
package display

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"tabstat/internal/table"
)

const ellipsis = "..."

// Frame is anything with labelled rows and named columns of cells
type Frame interface {
	ColumnNames() []string
	NumRows() int
	RowLabel(row int) string
	Value(row, col int) table.Value
}

// Options controls rendering. MaxRows and MaxColumns <= 0 mean no limit.
type Options struct {
	MaxRows        int
	MaxColumns     int
	FloatPrecision int
}

// DefaultFloatPrecision is used when Options.FloatPrecision is not positive
const DefaultFloatPrecision = 6

// Unlimited shows every row and column
func Unlimited() Options {
	return Options{FloatPrecision: DefaultFloatPrecision}
}

// Render writes f to w. Rows and columns beyond the limits in opts are
// elided from the middle and a dimensions footer is added.
func Render(w io.Writer, f Frame, opts Options) error {
	if opts.FloatPrecision <= 0 {
		opts.FloatPrecision = DefaultFloatPrecision
	}

	bw := bufio.NewWriter(w)
	names := f.ColumnNames()
	nrows := f.NumRows()

	if nrows == 0 || len(names) == 0 {
		writeEmpty(bw, f, names)
		return bw.Flush()
	}

	rows, rowsCut := window(nrows, opts.MaxRows)
	cols, colsCut := window(len(names), opts.MaxColumns)

	// grid[0] is the header; column 0 holds row labels.
	grid := make([][]string, len(rows)+1)
	grid[0] = append(grid[0], "")
	for _, c := range cols {
		if c < 0 {
			grid[0] = append(grid[0], ellipsis)
			continue
		}
		grid[0] = append(grid[0], names[c])
	}
	for i, r := range rows {
		line := make([]string, 0, len(cols)+1)
		if r < 0 {
			line = append(line, ellipsis)
		} else {
			line = append(line, f.RowLabel(r))
		}
		grid[i+1] = line
	}

	for _, c := range cols {
		if c < 0 {
			for i := range rows {
				grid[i+1] = append(grid[i+1], ellipsis)
			}
			continue
		}
		cells := formatColumn(f, c, rows, opts.FloatPrecision)
		for i := range rows {
			grid[i+1] = append(grid[i+1], cells[i])
		}
	}

	writeGrid(bw, grid)
	if rowsCut || colsCut {
		fmt.Fprintf(bw, "\n[%d rows x %d columns]\n", nrows, len(names))
	}
	return bw.Flush()
}

// window returns the indices to show out of n given limit; -1 marks the
// elision point.
func window(n, limit int) ([]int, bool) {
	if limit <= 0 || n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx, false
	}
	head := (limit + 1) / 2
	tail := limit / 2
	idx := make([]int, 0, limit+1)
	for i := 0; i < head; i++ {
		idx = append(idx, i)
	}
	idx = append(idx, -1)
	for i := n - tail; i < n; i++ {
		idx = append(idx, i)
	}
	return idx, true
}

// largeFloat is the magnitude above which a float column switches to
// scientific notation.
const largeFloat = 1e6

// formatColumn renders the shown cells of column c. Floats share one
// decimal count: the fewest digits, at least one and at most precision,
// that represent every shown value at that precision. A column holding a
// value above largeFloat or a nonzero value below 10^-precision is printed
// in scientific notation with precision digits.
func formatColumn(f Frame, c int, rows []int, precision int) []string {
	decimals := 1
	scientific := false
	for _, r := range rows {
		if r < 0 {
			continue
		}
		v := f.Value(r, c)
		if v.Kind() != table.KindFloat || v.IsMissing() {
			continue
		}
		fv, _ := v.Float64()
		if math.IsInf(fv, 0) {
			continue
		}
		if abs := math.Abs(fv); abs > largeFloat || (abs > 0 && abs < math.Pow10(-precision)) {
			scientific = true
		}
		if d := significantDecimals(fv, precision); d > decimals {
			decimals = d
		}
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		if r < 0 {
			out[i] = ellipsis
			continue
		}
		v := f.Value(r, c)
		if v.Kind() == table.KindFloat {
			fv, _ := v.Float64()
			out[i] = formatFloat(fv, decimals, precision, scientific)
			continue
		}
		out[i] = v.String()
	}
	return out
}

func formatFloat(v float64, decimals, precision int, scientific bool) string {
	if !scientific || math.IsNaN(v) || math.IsInf(v, 0) {
		return table.FormatFloat(v, decimals)
	}
	return strconv.FormatFloat(v, 'e', precision, 64)
}

func significantDecimals(v float64, precision int) int {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(strings.TrimRight(s[dot+1:], "0"))
}

func writeGrid(w *bufio.Writer, grid [][]string) {
	widths := make([]int, len(grid[0]))
	for _, line := range grid {
		for j, cell := range line {
			if n := utf8.RuneCountInString(cell); n > widths[j] {
				widths[j] = n
			}
		}
	}
	for _, line := range grid {
		for j, cell := range line {
			if j > 0 {
				w.WriteString("  ")
			}
			pad := widths[j] - utf8.RuneCountInString(cell)
			if j == 0 {
				// Row labels are left-aligned.
				w.WriteString(cell)
				w.WriteString(strings.Repeat(" ", pad))
				continue
			}
			w.WriteString(strings.Repeat(" ", pad))
			w.WriteString(cell)
		}
		w.WriteByte('\n')
	}
}

func writeEmpty(w *bufio.Writer, f Frame, names []string) {
	labels := make([]string, f.NumRows())
	for i := range labels {
		labels[i] = f.RowLabel(i)
	}
	w.WriteString("Empty DataFrame\n")
	fmt.Fprintf(w, "Columns: [%s]\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "Index: [%s]\n", strings.Join(labels, ", "))
}
