package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTSV writes a tab-separated file with the given header and rows into
// a fresh temp directory and returns its path.
func WriteTSV(t *testing.T, name string, header []string, rows ...[]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, "\t"))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return WriteFile(t, name, b.String())
}

// WriteFile writes content verbatim into a fresh temp directory and
// returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
