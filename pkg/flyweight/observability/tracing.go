package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the flyweight tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("flyweight")

// SpanManager handles trace span lifecycle for snapshot operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
//
// Registry lookups are not spanned: they are lock-bound in-memory
// operations that carry no context.
type SpanManager interface {
	// StartDumpSpan starts a span for a registry dump.
	// Returns the context with span and the span itself.
	StartDumpSpan(ctx context.Context, registry string) (context.Context, trace.Span)

	// StartWarmSpan starts a span for a registry warm.
	StartWarmSpan(ctx context.Context, registry string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDumpSpan starts a span for a registry dump.
func (m *otelSpanManager) StartDumpSpan(ctx context.Context, registry string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flyweight.dump",
		trace.WithAttributes(
			attribute.String("registry.name", registry),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartWarmSpan starts a span for a registry warm.
func (m *otelSpanManager) StartWarmSpan(ctx context.Context, registry string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flyweight.warm",
		trace.WithAttributes(
			attribute.String("registry.name", registry),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartDumpSpan starts a span for a registry dump.
// Uses the global OTel tracer.
func StartDumpSpan(ctx context.Context, registry string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flyweight.dump",
		trace.WithAttributes(
			attribute.String("registry.name", registry),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartWarmSpan starts a span for a registry warm.
// Uses the global OTel tracer.
func StartWarmSpan(ctx context.Context, registry string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flyweight.warm",
		trace.WithAttributes(
			attribute.String("registry.name", registry),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
