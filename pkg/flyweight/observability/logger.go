// Package observability provides production-grade observability features
// for flyweight registries: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds registry context to a logger.
// Returns a new logger with the registry field attached.
//
// Example:
//
//	enriched := EnrichLogger(logger, "glyphs")
//	enriched.Info("warming up") // includes registry
func EnrichLogger(logger *slog.Logger, registry string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("registry", registry),
	)
}

// LogConstruct logs the construction of a new shared payload.
func LogConstruct(logger *slog.Logger, registry string, key any, durationMs float64, sizeBytes int64) {
	if logger == nil {
		return
	}
	logger.Debug("flyweight constructed",
		slog.String("registry", registry),
		slog.Any("key", key),
		slog.Float64("duration_ms", durationMs),
		slog.Int64("size_bytes", sizeBytes),
	)
}

// LogSeed logs the installation of a prebuilt payload.
func LogSeed(logger *slog.Logger, registry string, key any, sizeBytes int64) {
	if logger == nil {
		return
	}
	logger.Debug("flyweight seeded",
		slog.String("registry", registry),
		slog.Any("key", key),
		slog.Int64("size_bytes", sizeBytes),
	)
}

// LogDumpStart logs the start of a registry dump.
func LogDumpStart(logger *slog.Logger, registry string, entries int) {
	if logger == nil {
		return
	}
	logger.Info("registry dump starting",
		slog.String("registry", registry),
		slog.Int("entries", entries),
	)
}

// LogDumpComplete logs successful dump completion.
func LogDumpComplete(logger *slog.Logger, registry string, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("registry dump completed",
		slog.String("registry", registry),
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogWarmStart logs the start of a registry warm.
func LogWarmStart(logger *slog.Logger, registry string, entries int) {
	if logger == nil {
		return
	}
	logger.Info("registry warm starting",
		slog.String("registry", registry),
		slog.Int("entries", entries),
	)
}

// LogWarmComplete logs successful warm completion.
func LogWarmComplete(logger *slog.Logger, registry string, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("registry warm completed",
		slog.String("registry", registry),
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSnapshotError logs a snapshot operation failure.
func LogSnapshotError(logger *slog.Logger, registry string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("snapshot failed",
		slog.String("registry", registry),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
