package table

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultNAValues are the cell contents read as missing. The empty string
// is always missing regardless of the configured set.
var DefaultNAValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var boolLiterals = map[string]bool{
	"True": true, "TRUE": true, "true": true,
	"False": false, "FALSE": false, "false": false,
}

type naSet map[string]struct{}

func newNASet(values []string) naSet {
	if values == nil {
		values = DefaultNAValues
	}
	set := make(naSet, len(values)+1)
	set[""] = struct{}{}
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s naSet) has(cell string) bool {
	_, ok := s[cell]
	return ok
}

// inferColumn picks the narrowest dtype that accepts every non-missing
// cell: Int64, then Float64, then Bool, falling back to Object.
func inferColumn(name string, raw []string, na naSet) *Column {
	col := &Column{Name: name, Values: make([]Value, len(raw))}
	if len(raw) == 0 {
		col.Dtype = Object
		return col
	}

	missing := make([]bool, len(raw))
	present := 0
	for i, cell := range raw {
		if na.has(cell) {
			missing[i] = true
		} else {
			present++
		}
	}

	// A column with nothing but missing markers is an all-NaN float column.
	if present == 0 {
		col.Dtype = Float64
		return col
	}

	if ints, ok := parseAll(raw, missing, parseInt); ok {
		if present == len(raw) {
			col.Dtype = Int64
			for i, v := range ints {
				col.Values[i] = Int(v)
			}
			return col
		}
		// Missing cells force integers into a float column.
		col.Dtype = Float64
		for i, v := range ints {
			if !missing[i] {
				col.Values[i] = Float(float64(v))
			}
		}
		return col
	}

	if floats, ok := parseAll(raw, missing, parseFloat); ok {
		col.Dtype = Float64
		for i, v := range floats {
			if !missing[i] {
				col.Values[i] = Float(v)
			}
		}
		return col
	}

	if present == len(raw) {
		if bools, ok := parseAll(raw, missing, parseBool); ok {
			col.Dtype = BoolDtype
			for i, v := range bools {
				col.Values[i] = Bool(v)
			}
			return col
		}
	}

	col.Dtype = Object
	for i, cell := range raw {
		if !missing[i] {
			col.Values[i] = Text(cell)
		}
	}
	return col
}

func parseAll[T any](raw []string, missing []bool, parse func(string) (T, bool)) ([]T, bool) {
	out := make([]T, len(raw))
	for i, cell := range raw {
		if missing[i] {
			continue
		}
		v, ok := parse(cell)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseInt accepts base-10 integers with optional sign and surrounding whitespace
func parseInt(cell string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
	return v, err == nil
}

// parseFloat accepts decimal floats, exponents and infinities. Hex floats
// and digit separators are text.
func parseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if !isDecimalFloat(s) && !isInfinity(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func parseBool(cell string) (bool, bool) {
	v, ok := boolLiterals[cell]
	return v, ok
}

func isInfinity(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.EqualFold(s, "inf") || strings.EqualFold(s, "infinity")
}

// isDecimalFloat matches [+-]digits[.digits][(e|E)[+-]digits] with at
// least one mantissa digit.
func isDecimalFloat(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
