package stats

import (
	"math"
	"sort"

	onlinestats "github.com/dgryski/go-onlinestats"

	"tabstat/internal/table"
)

// Stat identifies one summary row
type Stat int

const (
	StatCount Stat = iota
	StatMean
	StatStd
	StatMin
	Stat25
	Stat50
	Stat75
	StatMax
	numStats
)

var statLabels = [numStats]string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func (s Stat) String() string {
	if s < 0 || s >= numStats {
		return "unknown"
	}
	return statLabels[s]
}

// Labels returns the summary row labels in order
func Labels() []string {
	out := make([]string, numStats)
	copy(out, statLabels[:])
	return out
}

// ColumnStats holds the statistics of one column
type ColumnStats struct {
	Name   string
	Values [numStats]float64
}

// Get returns a single statistic
func (c ColumnStats) Get(s Stat) float64 {
	if s < 0 || s >= numStats {
		return math.NaN()
	}
	return c.Values[s]
}

// describeColumn computes the statistics of values, which must not contain
// missing entries.
func describeColumn(name string, values []float64) ColumnStats {
	cs := ColumnStats{Name: name}
	n := len(values)
	cs.Values[StatCount] = float64(n)
	if n == 0 {
		for s := StatMean; s < numStats; s++ {
			cs.Values[s] = math.NaN()
		}
		return cs
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	cs.Values[StatMean] = Mean(values)
	cs.Values[StatStd] = SampleStdDev(values)
	cs.Values[StatMin] = sorted[0]
	cs.Values[Stat25] = Quantile(sorted, 0.25)
	cs.Values[Stat50] = Quantile(sorted, 0.50)
	cs.Values[Stat75] = Quantile(sorted, 0.75)
	cs.Values[StatMax] = sorted[n-1]
	return cs
}

// Mean returns the arithmetic mean of values, NaN when empty
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	if hasInf(values) {
		// Running updates turn inf-inf into NaN.
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
	r := onlinestats.NewRunning()
	for _, v := range values {
		r.Push(v)
	}
	return r.Mean()
}

// SampleStdDev returns the standard deviation with divisor n-1. It is NaN
// for fewer than two values.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 || hasInf(values) {
		return math.NaN()
	}
	r := onlinestats.NewRunning()
	for _, v := range values {
		r.Push(v)
	}
	return math.Sqrt(r.Var())
}

func hasInf(values []float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// Quantile returns the p-quantile of sorted by linear interpolation at
// position p*(n-1). sorted must be ascending; p is clamped to [0, 1].
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = math.Max(0, math.Min(1, p))

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	a, b := sorted[lo], sorted[hi]
	if a == b {
		return a
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		if frac < 0.5 {
			return a
		}
		return b
	}
	if frac >= 0.5 {
		return b - (b-a)*(1-frac)
	}
	return a + (b-a)*frac
}

// Describe summarizes every numeric column of t in column order. Tables
// without numeric columns give a Summary with the eight labels and no
// columns.
func Describe(t *table.Table) *Summary {
	numeric := t.NumericColumns()
	s := &Summary{
		columns: make([]ColumnStats, 0, len(numeric)),
		index:   make(map[string]int, len(numeric)),
	}
	for _, c := range numeric {
		s.index[c.Name] = len(s.columns)
		s.columns = append(s.columns, describeColumn(c.Name, c.NonMissing()))
	}
	return s
}
