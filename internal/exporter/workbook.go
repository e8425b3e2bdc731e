package exporter

import (
	"context"
	"log/slog"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	apperrors "tabstat/internal/errors"
	"tabstat/internal/stats"
	"tabstat/internal/table"
	"tabstat/internal/validation"
)

// Sheet names used in exported workbooks
const (
	DataSheet    = "data"
	SummarySheet = "summary"
)

// WorkbookExporter writes xlsx files
type WorkbookExporter struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// Export writes t and, if non-nil, summary to a workbook at path,
// replacing any existing file.
func (e *WorkbookExporter) Export(ctx context.Context, path string, t *table.Table, summary *stats.Summary) error {
	if err := e.validator.ValidateWorkbookPath(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DataSheet); err != nil {
		return apperrors.NewStorageError("failed to name data sheet", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	if err := writeTable(f, t, header); err != nil {
		return apperrors.NewStorageError("failed to write data sheet", err).WithContext("path", path)
	}
	if summary != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return apperrors.NewStorageError("failed to add summary sheet", err)
		}
		if err := writeSummary(f, summary, header); err != nil {
			return apperrors.NewStorageError("failed to write summary sheet", err).WithContext("path", path)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	attrs := []any{
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Bool("summary", summary != nil),
	}
	if info, err := os.Stat(path); err == nil {
		attrs = append(attrs, slog.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	e.logger.InfoContext(ctx, "Workbook exported", attrs...)
	return nil
}

func writeTable(f *excelize.File, t *table.Table, headerStyle int) error {
	names := t.ColumnNames()
	if err := writeHeader(f, DataSheet, names, false, headerStyle); err != nil {
		return err
	}
	row := make([]interface{}, t.NumColumns())
	for r := 0; r < t.NumRows(); r++ {
		for c := range row {
			row[c] = cellValue(t.Value(r, c))
		}
		if err := setRow(f, DataSheet, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s *stats.Summary, headerStyle int) error {
	if err := writeHeader(f, SummarySheet, s.ColumnNames(), true, headerStyle); err != nil {
		return err
	}
	row := make([]interface{}, s.NumColumns()+1)
	for r, label := range s.Labels() {
		row[0] = label
		for c := 0; c < s.NumColumns(); c++ {
			row[c+1] = cellValue(s.Value(r, c))
		}
		if err := setRow(f, SummarySheet, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, names []string, labelColumn bool, style int) error {
	row := make([]interface{}, 0, len(names)+1)
	if labelColumn {
		row = append(row, "")
	}
	for _, n := range names {
		row = append(row, n)
	}
	if len(row) == 0 {
		return nil
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(row), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, rowNum int, row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &row)
}

// cellValue maps a table cell to an excelize value. Missing cells are nil
// and left empty; infinities have no numeric form in xlsx and become text.
func cellValue(v table.Value) interface{} {
	if v.IsMissing() {
		return nil
	}
	switch v.Kind() {
	case table.KindInt:
		i, _ := v.Int64()
		return i
	case table.KindFloat:
		fv, _ := v.Float64()
		if math.IsInf(fv, 0) {
			return table.FormatFloat(fv, -1)
		}
		return fv
	case table.KindBool:
		b, _ := v.Boolean()
		return b
	default:
		return v.String()
	}
}
