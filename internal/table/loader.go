package table

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	apperrors "tabstat/internal/errors"
	"tabstat/internal/validation"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadOptions configures parsing of delimited text
type LoadOptions struct {
	// Delimiter separates fields. It has no default and must be set.
	Delimiter rune
	// NAValues replaces DefaultNAValues when non-nil.
	NAValues []string
}

func (o LoadOptions) validate() error {
	d := o.Delimiter
	if d == 0 || d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError || !utf8.ValidRune(d) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid field delimiter %q", d))
	}
	return nil
}

// LoadReport describes what Load did
type LoadReport struct {
	Path         string
	Rows         int
	Columns      int
	CellsTrimmed int
}

// Loader reads delimited files into Tables
type Loader struct {
	logger    *slog.Logger
	opts      LoadOptions
	validator *validation.FileValidator
}

// NewLoader creates a loader with the given options
func NewLoader(logger *slog.Logger, opts LoadOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		opts:      opts,
		validator: validation.NewFileValidator(logger),
	}
}

// Load reads the file at path, infers column dtypes and trims whitespace
// from text columns. The file is closed before Load returns.
func (l *Loader) Load(ctx context.Context, path string) (*Table, LoadReport, error) {
	report := LoadReport{Path: path}

	if err := l.opts.validate(); err != nil {
		return nil, report, err
	}
	if err := l.validator.ValidateInputFile(path); err != nil {
		return nil, report, err
	}

	t, err := l.readFile(ctx, path)
	if err != nil {
		return nil, report, err
	}

	report.Rows = t.NumRows()
	report.Columns = t.NumColumns()
	report.CellsTrimmed = t.TrimText()

	l.logger.InfoContext(ctx, "Table loaded",
		slog.String("path", path),
		slog.Int("rows", report.Rows),
		slog.Int("columns", report.Columns),
		slog.Int("cells_trimmed", report.CellsTrimmed))

	return t, report, nil
}

func (l *Loader) readFile(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileAccessError(path, err)
	}
	defer f.Close()

	t, err := l.Read(ctx, f)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	return t, nil
}

// Read parses delimited text from r. The first record is the header; every
// following record must have the same number of fields. Text is not trimmed.
func (l *Loader) Read(ctx context.Context, r io.Reader) (*Table, error) {
	if err := l.opts.validate(); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = l.opts.Delimiter
	cr.LazyQuotes = true
	// FieldsPerRecord 0: the header fixes the field count for every row.
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewParsingError("no columns to parse from input", err)
	}
	if err != nil {
		return nil, parseError(err, 0)
	}

	raw := make([][]string, len(header))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if isBlankRecord(record, err) {
			continue
		}
		if err != nil {
			return nil, parseError(err, len(record)).WithContext("expected_fields", len(header))
		}
		for i, cell := range record {
			raw[i] = append(raw[i], cell)
		}
	}

	na := newNASet(l.opts.NAValues)
	names := normalizeHeader(header)
	columns := make([]*Column, len(header))
	for i, name := range names {
		columns[i] = inferColumn(name, raw[i], na)
		l.logger.DebugContext(ctx, "Column inferred",
			slog.String("column", name),
			slog.String("dtype", columns[i].Dtype.String()))
	}

	t, err := New(columns...)
	if err != nil {
		return nil, apperrors.NewParsingError("inconsistent columns", err)
	}
	return t, nil
}

// isBlankRecord reports whether a record came from a line holding only
// spaces and tabs. encoding/csv already drops empty lines.
func isBlankRecord(record []string, err error) bool {
	if err != nil && !errors.Is(err, csv.ErrFieldCount) {
		return false
	}
	return len(record) == 1 && strings.Trim(record[0], " \t") == ""
}

func parseError(err error, fields int) *apperrors.AppError {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return apperrors.NewParsingError("failed to read delimited input", err)
	}
	msg := "malformed delimited input"
	if errors.Is(err, csv.ErrFieldCount) {
		msg = fmt.Sprintf("line %d has %d fields", pe.Line, fields)
	}
	return apperrors.NewParsingError(msg, err).WithContext("line", pe.Line)
}

// normalizeHeader names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... so every column name is unique.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		names[i] = h
	}
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	used := make(map[string]bool, len(names))
	for i, n := range names {
		if !used[n] {
			used[n] = true
			continue
		}
		k := seen[n]
		candidate := n
		for used[candidate] || (taken[candidate] && candidate != n) {
			k++
			candidate = fmt.Sprintf("%s.%d", n, k)
		}
		seen[n] = k
		names[i] = candidate
		used[candidate] = true
	}
	return names
}
