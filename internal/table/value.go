package table

import (
	"math"
	"strconv"
)

// Kind tags the variant held by a Value
type Kind uint8

const (
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Value is a single cell: missing, an integer, a float, text or a bool.
// The zero Value is missing.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Missing returns the missing marker
func Missing() Value { return Value{} }

// Int returns an integer cell
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a float cell
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a text cell
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Bool returns a boolean cell
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind reports which variant v holds
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is missing. A NaN float counts as missing.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing || (v.kind == KindFloat && math.IsNaN(v.f))
}

// Float64 returns the numeric view of v. ok is false for missing, text and
// bool cells.
func (v Value) Float64() (f float64, ok bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		if math.IsNaN(v.f) {
			return v.f, false
		}
		return v.f, true
	}
	return math.NaN(), false
}

// Int64 returns the integer held by v
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Str returns the text held by v
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindText
}

// Boolean returns the bool held by v
func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String renders v without any column context
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f, -1)
	case KindText:
		return v.s
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return "NaN"
	}
}

// FormatFloat renders f with the given number of decimals (-1 for the
// shortest exact form), spelling non-finite values NaN, inf and -inf.
func FormatFloat(f float64, decimals int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}
