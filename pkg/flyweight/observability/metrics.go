package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flyweight registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLookup records a registry lookup and whether it hit a shared payload.
	RecordLookup(ctx context.Context, registry string, hit bool)

	// RecordConstruct records construction of a new shared payload.
	RecordConstruct(ctx context.Context, registry string, duration time.Duration, sizeBytes int64)

	// RecordSnapshot records a snapshot operation ("dump" or "warm") and
	// the number of entries it touched.
	RecordSnapshot(ctx context.Context, registry, op string, entries int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	lookups          metric.Int64Counter
	constructLatency metric.Float64Histogram
	payloadSize      metric.Int64Histogram
	snapshotEntries  metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flyweight")

	lookups, err := meter.Int64Counter("flyweight.registry.lookups",
		metric.WithDescription("Number of registry lookups by result"),
	)
	if err != nil {
		return nil, err
	}

	constructLatency, err := meter.Float64Histogram("flyweight.registry.construct_latency_ms",
		metric.WithDescription("Payload construction latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	payloadSize, err := meter.Int64Histogram("flyweight.registry.payload_bytes",
		metric.WithDescription("Accounted size of constructed payloads in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	snapshotEntries, err := meter.Int64Histogram("flyweight.snapshot.entries",
		metric.WithDescription("Entries touched per snapshot operation"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		lookups:          lookups,
		constructLatency: constructLatency,
		payloadSize:      payloadSize,
		snapshotEntries:  snapshotEntries,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLookup records a registry lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, registry string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("result", result),
	))
}

// RecordConstruct records payload construction.
func (m *otelMetrics) RecordConstruct(ctx context.Context, registry string, duration time.Duration, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("registry", registry),
	}

	m.constructLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if sizeBytes > 0 {
		m.payloadSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
	}
}

// RecordSnapshot records a snapshot operation.
func (m *otelMetrics) RecordSnapshot(ctx context.Context, registry, op string, entries int) {
	m.snapshotEntries.Record(ctx, int64(entries), metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("op", op),
	))
}
