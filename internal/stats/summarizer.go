package stats

import (
	"context"
	"log/slog"
	"math"

	"tabstat/internal/table"
)

// Summarizer wraps Describe with logging
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Describe summarizes t and logs columns with degenerate statistics
func (s *Summarizer) Describe(ctx context.Context, t *table.Table) *Summary {
	summary := Describe(t)

	for _, c := range summary.columns {
		if math.IsNaN(c.Values[StatStd]) {
			s.logger.DebugContext(ctx, "Standard deviation undefined",
				slog.String("column", c.Name),
				slog.Int("count", int(c.Values[StatCount])))
		}
	}

	s.logger.InfoContext(ctx, "Summary computed",
		slog.Int("numeric_columns", summary.NumColumns()),
		slog.Int("skipped_columns", t.NumColumns()-summary.NumColumns()))
	return summary
}
