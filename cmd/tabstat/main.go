// Command tabstat loads a tab-separated file, trims whitespace from its
// text columns and prints the cleaned table.
//
// It takes no flags. Settings come from an optional tabstat.yaml and
// TABSTAT_* environment variables; see internal/config. Logs go to stderr
// so stdout carries only the rendered table.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"tabstat/internal/app"
	"tabstat/internal/config"
	apperrors "tabstat/internal/errors"
	"tabstat/internal/infrastructure"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", errorAttrs(err)...)
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.ContextWithTraceID(ctx)
	logger.InfoContext(ctx, "tabstat starting",
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Input.Path))

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to initialize telemetry")
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Telemetry shutdown failed")
		}
	}()

	pipeline, err := app.New(cfg, logger, stdout, telemetry)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create pipeline", errorAttrs(err)...)
		return err
	}

	if _, err := pipeline.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "tabstat failed", errorAttrs(err)...)
		return err
	}
	return nil
}

func errorAttrs(err error) []any {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.LogAttrs()
	}
	return []any{slog.String("error", err.Error())}
}
