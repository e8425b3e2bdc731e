package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tabstat/internal/errors"
	"tabstat/internal/infrastructure"
	"tabstat/internal/shared/testutil"
)

// useConfig points the run at a YAML file and keeps logs out of the
// test output.
func useConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tabstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("TABSTAT_CONFIG_FILE", path)
	t.Setenv("TABSTAT_LOGGING_OUTPUT", "file")
	t.Setenv("TABSTAT_LOGGING_FILE_PATH", filepath.Join(dir, "logs", "tabstat.log"))

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return dir
}

func TestRun(t *testing.T) {
	input := testutil.WriteTSV(t, "data.csv", []string{"a", "b"}, []string{"1", " x "}, []string{" 2 ", "y"})
	dir := useConfig(t, "input:\n  path: "+input+"\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"a", "b"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "1", "x"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "2", "y"}, strings.Fields(lines[2]))

	logs, err := os.ReadFile(filepath.Join(dir, "logs", "tabstat.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"trace_id"`)
	assert.Contains(t, string(logs), "Pipeline completed")
}

func TestRun_MissingInput(t *testing.T) {
	useConfig(t, "input:\n  path: "+filepath.Join(t.TempDir(), "absent.csv")+"\n")

	var out bytes.Buffer
	err := run(context.Background(), &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsFileAccess(err))
	assert.Empty(t, out.String())
}

func TestRun_InvalidConfig(t *testing.T) {
	useConfig(t, "display:\n  float_precision: 40\n")

	err := run(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}
