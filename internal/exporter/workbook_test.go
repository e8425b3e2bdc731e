package exporter

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "tabstat/internal/errors"
	"tabstat/internal/shared/testutil"
	"tabstat/internal/stats"
	"tabstat/internal/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		&table.Column{Name: "a", Dtype: table.Int64, Values: []table.Value{table.Int(1), table.Int(2)}},
		&table.Column{Name: "b", Dtype: table.Object, Values: []table.Value{table.Text("x"), table.Missing()}},
		&table.Column{Name: "c", Dtype: table.Float64, Values: []table.Value{table.Float(1.5), table.Float(math.Inf(1))}},
		&table.Column{Name: "d", Dtype: table.BoolDtype, Values: []table.Value{table.Bool(true), table.Bool(false)}},
	)
	require.NoError(t, err)
	return tbl
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookExporter_Export(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	tbl := sampleTable(t)
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")

	require.NoError(t, NewWorkbookExporter(logger).Export(context.Background(), path, tbl, stats.Describe(tbl)))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{DataSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "b", "c", "d"},
		{"1", "x", "1.5", "TRUE"},
		{"2", "", "inf", "FALSE"},
	}, rows)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 9)
	assert.Equal(t, []string{"", "a", "c"}, summary[0])
	assert.Equal(t, []string{"count", "2", "2"}, summary[1])
	assert.Equal(t, []string{"mean", "1.5"}, summary[2][:2])

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Workbook exported")
	testutil.AssertLogAttr(t, logs, "path", path)
}

func TestWorkbookExporter_ExportWithoutSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, NewWorkbookExporter(nil).Export(context.Background(), path, sampleTable(t), nil))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{DataSheet}, f.GetSheetList())
}

func TestWorkbookExporter_ExportReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, NewWorkbookExporter(nil).Export(context.Background(), path, sampleTable(t), nil))

	f := openWorkbook(t, path)
	v, err := f.GetCellValue(DataSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestWorkbookExporter_InvalidTarget(t *testing.T) {
	tests := []struct {
		name    string
		path    func(dir string) string
		errType apperrors.ErrorType
	}{
		{
			name:    "not an xlsx file",
			path:    func(dir string) string { return filepath.Join(dir, "report.csv") },
			errType: apperrors.ErrTypeValidation,
		},
		{
			name: "directory blocked by a file",
			path: func(dir string) string {
				blocker := filepath.Join(dir, "blocker")
				require.NoError(t, os.WriteFile(blocker, nil, 0644))
				return filepath.Join(blocker, "report.xlsx")
			},
			errType: apperrors.ErrTypeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewWorkbookExporter(nil).Export(context.Background(), tt.path(t.TempDir()), sampleTable(t), nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue(table.Missing()))
	assert.Nil(t, cellValue(table.Float(math.NaN())))
	assert.Equal(t, int64(3), cellValue(table.Int(3)))
	assert.Equal(t, 2.5, cellValue(table.Float(2.5)))
	assert.Equal(t, "-inf", cellValue(table.Float(math.Inf(-1))))
	assert.Equal(t, true, cellValue(table.Bool(true)))
	assert.Equal(t, "s", cellValue(table.Text("s")))
}
