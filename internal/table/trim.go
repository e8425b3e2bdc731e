package table

import "strings"

// TrimText strips leading and trailing whitespace from every cell of every
// Object column and returns how many cells changed. Numeric and bool
// columns are skipped by dtype; missing cells stay missing. Calling it
// again on a trimmed table changes nothing.
func (t *Table) TrimText() int {
	changed := 0
	for _, c := range t.columns {
		if c.Dtype != Object {
			continue
		}
		for i, v := range c.Values {
			s, ok := v.Str()
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(s); trimmed != s {
				c.Values[i] = Text(trimmed)
				changed++
			}
		}
	}
	return changed
}
