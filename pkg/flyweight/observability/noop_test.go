package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_RecordLookup(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic on hit", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordLookup(context.Background(), "glyphs", true)
		})
	})

	t.Run("does not panic on miss", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordLookup(context.Background(), "glyphs", false)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordLookup(nil, "glyphs", true)
		})
	})

	t.Run("does not panic with empty registry name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordLookup(context.Background(), "", false)
		})
	})
}

func TestNoopMetrics_RecordConstruct(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConstruct(context.Background(), "glyphs", 100*time.Millisecond, 1024)
		})
	})

	t.Run("does not panic with zero size", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConstruct(context.Background(), "glyphs", 0, 0)
		})
	})

	t.Run("does not panic with negative size", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConstruct(context.Background(), "glyphs", 0, -1)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConstruct(nil, "glyphs", time.Second, 10)
		})
	})
}

func TestNoopMetrics_RecordSnapshot(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordSnapshot(context.Background(), "glyphs", "dump", 42)
		})
	})

	t.Run("does not panic with zero entries", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordSnapshot(context.Background(), "glyphs", "warm", 0)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordSnapshot(nil, "glyphs", "dump", 1)
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_StartDumpSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartDumpSpan(ctx, "glyphs")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartDumpSpan(ctx, "glyphs")

		// Noop spans are not recording
		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty registry name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartDumpSpan(context.Background(), "")
		})
	})
}

func TestNoopSpanManager_StartWarmSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartWarmSpan(ctx, "glyphs")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartWarmSpan(ctx, "glyphs")

		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty registry name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartWarmSpan(context.Background(), "")
		})
	})
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with nil error", func(t *testing.T) {
		_, span := sm.StartDumpSpan(context.Background(), "g")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartWarmSpan(context.Background(), "g")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event", attribute.String("key", "value"))
		})
	})

	t.Run("does not panic with no attributes", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(nil, "test_event")
		})
	})

	t.Run("does not panic with empty event name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "")
		})
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// This test verifies that noop implementations can be used
	// in a realistic scenario without any side effects

	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()

	// Simulate a registry session: a warm, some lookups, a dump
	ctx, warmSpan := spans.StartWarmSpan(ctx, "glyphs")
	metrics.RecordSnapshot(ctx, "glyphs", "warm", 3)
	spans.AddSpanEvent(ctx, "flyweight.warm.skipped", attribute.Int("entries", 1))
	spans.EndSpanWithError(warmSpan, nil)

	for i, key := range []string{"a", "b", "a"} {
		hit := i == 2
		metrics.RecordLookup(ctx, "glyphs", hit)

		if !hit {
			start := time.Now()
			time.Sleep(1 * time.Millisecond)
			metrics.RecordConstruct(ctx, "glyphs", time.Since(start), int64(len(key)))
		}
	}

	ctx, dumpSpan := spans.StartDumpSpan(ctx, "glyphs")
	metrics.RecordSnapshot(ctx, "glyphs", "dump", 2)
	spans.EndSpanWithError(dumpSpan, errors.New("simulated error"))

	// If we get here without panicking, the test passes
}
