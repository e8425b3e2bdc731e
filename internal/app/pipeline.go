package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"tabstat/internal/config"
	"tabstat/internal/display"
	apperrors "tabstat/internal/errors"
	"tabstat/internal/exporter"
	"tabstat/internal/infrastructure"
	"tabstat/internal/stats"
	"tabstat/internal/table"
)

// Stage names used for spans, logs and metrics
const (
	StageLoad      = "load"
	StageDisplay   = "display"
	StageSummarize = "summarize"
	StageExport    = "export"
	StageMetrics   = "metrics"
)

// Result is what a successful run produced
type Result struct {
	Table   *table.Table
	Summary *stats.Summary // nil unless the summary is enabled
	Load    table.LoadReport
}

// Pipeline runs the load, display, summarize and export stages once
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	stdout     io.Writer
	telemetry  *infrastructure.Telemetry
	loader     *table.Loader
	summarizer *stats.Summarizer
	exporter   *exporter.WorkbookExporter
	display    display.Options
}

// New creates a pipeline writing rendered output to stdout. A nil
// telemetry gets a private one that records nothing to disk.
func New(cfg *config.Config, logger *slog.Logger, stdout io.Writer, telemetry *infrastructure.Telemetry) (*Pipeline, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigError("configuration is required", nil)
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	delim, err := cfg.Input.Rune()
	if err != nil {
		return nil, err
	}
	if telemetry == nil {
		telemetry, err = infrastructure.InitializeTelemetry(config.TelemetryConfig{}, logger)
		if err != nil {
			return nil, err
		}
	}

	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		stdout:    stdout,
		telemetry: telemetry,
		loader: table.NewLoader(infrastructure.WithComponent(logger, "loader"), table.LoadOptions{
			Delimiter: delim,
			NAValues:  cfg.Input.NAValues,
		}),
		summarizer: stats.NewSummarizer(infrastructure.WithComponent(logger, "summarizer")),
		exporter:   exporter.NewWorkbookExporter(infrastructure.WithComponent(logger, "exporter")),
		display: display.Options{
			MaxRows:        cfg.Display.MaxRows,
			MaxColumns:     cfg.Display.MaxColumns,
			FloatPrecision: cfg.Display.FloatPrecision,
		},
	}, nil
}

// Run executes every enabled stage in order and stops at the first error
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := p.telemetry.StartSpan(ctx, "tabstat.run",
		attribute.String("input.path", p.cfg.Input.Path),
		attribute.Bool("summary.enabled", p.cfg.Summary.Enabled))
	defer span.End()

	start := time.Now()
	p.logger.InfoContext(ctx, "Pipeline started",
		slog.String("input", p.cfg.Input.Path),
		slog.Bool("summary", p.cfg.Summary.Enabled))

	res, err := p.run(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	p.logger.InfoContext(ctx, "Pipeline completed",
		slog.Int("rows", res.Load.Rows),
		slog.Int("columns", res.Load.Columns),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	res := &Result{}

	err := p.stage(ctx, StageLoad, func(ctx context.Context) error {
		t, report, err := p.loader.Load(ctx, p.cfg.Input.Path)
		if err != nil {
			return err
		}
		res.Table, res.Load = t, report
		p.telemetry.Metrics.RowsLoaded.Add(ctx, int64(report.Rows))
		p.telemetry.Metrics.CellsTrimmed.Add(ctx, int64(report.CellsTrimmed))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageDisplay, func(ctx context.Context) error {
		return p.render(res.Table)
	}); err != nil {
		return nil, err
	}

	if p.cfg.Summary.Enabled {
		err := p.stage(ctx, StageSummarize, func(ctx context.Context) error {
			res.Summary = p.summarizer.Describe(ctx, res.Table)
			p.telemetry.Metrics.ColumnsSummarized.Add(ctx, int64(res.Summary.NumColumns()))
			if _, err := io.WriteString(p.stdout, "\n"); err != nil {
				return apperrors.NewStorageError("failed to write output", err)
			}
			return p.render(res.Summary)
		})
		if err != nil {
			return nil, err
		}
	}

	if path := p.cfg.Export.WorkbookPath; path != "" {
		if err := p.stage(ctx, StageExport, func(ctx context.Context) error {
			return p.exporter.Export(ctx, path, res.Table, res.Summary)
		}); err != nil {
			return nil, err
		}
	}

	// Metrics are written last so they include every earlier stage.
	if err := p.telemetry.WriteMetrics(); err != nil {
		return nil, apperrors.NewStorageError("failed to write metrics", err).
			WithContext("stage", StageMetrics)
	}

	return res, nil
}

func (p *Pipeline) render(f display.Frame) error {
	if err := display.Render(p.stdout, f, p.display); err != nil {
		return apperrors.NewStorageError("failed to write output", err)
	}
	return nil
}

// stage runs fn in a child span and records its duration and outcome
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.telemetry.StartSpan(ctx, "tabstat."+name, attribute.String("stage", name))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	p.telemetry.Metrics.RecordStage(ctx, name, elapsed, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		attrs := []any{slog.String("stage", name)}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			attrs = append(attrs, appErr.LogAttrs()...)
		} else {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		p.logger.ErrorContext(ctx, "Stage failed", attrs...)
		return err
	}

	p.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.Duration("duration", elapsed))
	return nil
}
