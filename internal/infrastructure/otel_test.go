package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstat/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestInitializeTelemetry_Defaults(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{}, testLogger())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	assert.Nil(t, tel.TracerProvider)
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.MeterProvider)
	assert.NotNil(t, tel.Registry)
	require.NotNil(t, tel.Metrics)

	// Spans from the no-op tracer are never recording.
	ctx, span := tel.StartSpan(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()
	assert.Empty(t, TraceIDFromContext(ctx))

	// No textfile configured: nothing to write.
	assert.NoError(t, tel.WriteMetrics())
}

func TestTelemetry_TracingToFile(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "traces", "run.json")
	tel, err := InitializeTelemetry(config.TelemetryConfig{
		TracingEnabled: true,
		TraceFile:      traceFile,
	}, testLogger())
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	ctx, span := tel.StartSpan(context.Background(), "table.load")
	assert.True(t, span.IsRecording())
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("ragged row"))
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "table.load")
	assert.Contains(t, string(content), "ragged row")
}

func TestTelemetry_WriteMetrics(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "metrics", "tabstat.prom")
	tel, err := InitializeTelemetry(config.TelemetryConfig{MetricsTextfile: metricsFile}, testLogger())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	ctx := context.Background()
	tel.Metrics.RowsLoaded.Add(ctx, 42)
	tel.Metrics.CellsTrimmed.Add(ctx, 7)
	tel.Metrics.ColumnsSummarized.Add(ctx, 3)
	tel.Metrics.RecordStage(ctx, "load", 15*time.Millisecond, nil)
	tel.Metrics.RecordStage(ctx, "render", time.Millisecond, errors.New("closed pipe"))

	require.NoError(t, tel.WriteMetrics())

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "tabstat_rows_loaded")
	assert.Contains(t, text, "42")
	assert.Contains(t, text, "tabstat_cells_trimmed")
	assert.Contains(t, text, "tabstat_columns_summarized")
	assert.Contains(t, text, "tabstat_stage_duration")
	assert.Contains(t, text, `stage="load"`)
	assert.Contains(t, text, `status="failure"`)
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.RecordStage(context.Background(), "load", time.Second, nil)
	})
}

func TestRecordError_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), errors.New("x"))
		RecordError(context.Background(), nil)
	})
}
