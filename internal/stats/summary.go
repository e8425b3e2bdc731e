package stats

import "tabstat/internal/table"

// Summary is the read-only result of Describe
type Summary struct {
	columns []ColumnStats
	index   map[string]int
}

// Labels returns the row labels
func (s *Summary) Labels() []string { return Labels() }

// ColumnNames returns the summarized column names in input order
func (s *Summary) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// NumColumns returns the number of summarized columns
func (s *Summary) NumColumns() int { return len(s.columns) }

// Column returns the statistics of a column by name
func (s *Summary) Column(name string) (ColumnStats, bool) {
	i, ok := s.index[name]
	if !ok {
		return ColumnStats{}, false
	}
	return s.columns[i], true
}

// Get returns one statistic of one column
func (s *Summary) Get(name string, stat Stat) (float64, bool) {
	c, ok := s.Column(name)
	if !ok || stat < 0 || stat >= numStats {
		return 0, false
	}
	return c.Values[stat], true
}

// NumRows is always the number of statistics
func (s *Summary) NumRows() int { return int(numStats) }

// RowLabel returns the statistic label of row
func (s *Summary) RowLabel(row int) string { return Stat(row).String() }

// Value returns the statistic at (row, col) as a float cell
func (s *Summary) Value(row, col int) table.Value {
	return table.Float(s.columns[col].Values[row])
}
