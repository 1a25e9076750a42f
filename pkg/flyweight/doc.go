/*
Package flyweight provides a generic registry for sharing immutable payloads.

# Overview

flyweight is a Go library for deduplicating the heavy, intrinsic part of
objects that occur in large numbers: glyphs in a document, tree species in
a forest, sprite data in a particle system. A Registry holds exactly one
payload per distinct key and hands the same payload to every caller that
asks for an equal key, so thousands of logical instances can share a
handful of representations. Per-instance state (position, color, context)
stays with the caller.

The library provides:
  - Type-safe generics for keys and payloads
  - Lazy construction with an at-most-once factory guarantee
  - Sharing statistics (hits, misses, bytes)
  - Optional snapshot persistence for warm starts
  - OpenTelemetry integration for observability

# Basic Usage

Define a comparable key, a payload, and a factory, then share away:

	type GlyphKey struct {
	    Ch    rune
	    Font  string
	    Style string
	}

	type Glyph struct {
	    Outline []byte
	}

	func main() {
	    glyphs := flyweight.New(func(k GlyphKey) *Glyph {
	        return &Glyph{Outline: rasterize(k.Ch, k.Font, k.Style)}
	    })

	    a, _ := glyphs.GetOrCreate(GlyphKey{'l', "Arial", "normal"})
	    b, _ := glyphs.GetOrCreate(GlyphKey{'l', "Arial", "normal"})
	    fmt.Println(a == b)      // true: same pointer
	    fmt.Println(glyphs.Len()) // 1
	}

Use a pointer payload type (V = *T) when callers need to observe the
identity guarantee directly; equal keys then yield the same pointer.
Payloads must be treated as immutable once stored.

# Key Validation

Reject malformed keys before any payload is constructed:

	glyphs := flyweight.New(newGlyph,
	    flyweight.WithValidator[GlyphKey, *Glyph](func(k GlyphKey) error {
	        if k.Font == "" {
	            return fmt.Errorf("font is required")
	        }
	        return nil
	    }),
	)

	_, err := glyphs.GetOrCreate(GlyphKey{Ch: 'x'})
	if errors.Is(err, flyweight.ErrInvalidKey) {
	    // key never entered the registry
	}

# Statistics

Stats reports how much sharing is happening:

	stats := glyphs.Stats()
	fmt.Printf("%d requests, %d payloads, hit rate %.0f%%\n",
	    stats.Requests(), stats.Size, stats.HitRate()*100)

Add a sizer to account payload bytes:

	flyweight.WithSizer[GlyphKey, *Glyph](func(g *Glyph) int64 {
	    return int64(len(g.Outline))
	})

# Snapshots

Persist a registry's contents and warm-start a fresh one:

	store, err := snapshot.NewSQLiteStore("./flyweights.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	codec := snapshot.JSONCodec[GlyphKey, *Glyph]()
	saved, err := glyphs.Dump(ctx, store, codec)

	// After restart
	restored, err := glyphs.Warm(ctx, store, codec)

Warming uses Seed semantics: keys already present keep their stored
payload, so the identity guarantee survives a warm over a live registry.

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	glyphs := flyweight.New(newGlyph,
	    flyweight.WithName[GlyphKey, *Glyph]("glyphs"),
	    flyweight.WithLogger[GlyphKey, *Glyph](logger),
	    flyweight.WithMetrics[GlyphKey, *Glyph](true),
	    flyweight.WithTracing[GlyphKey, *Glyph](true),
	)

Logs include structured fields: registry, key, duration_ms, size_bytes.
OpenTelemetry metrics: flyweight.registry.lookups,
flyweight.registry.construct_latency_ms, flyweight.registry.payload_bytes.
OpenTelemetry tracing: flyweight.dump and flyweight.warm spans.

# Error Handling

Errors carry context about what was rejected or which operation failed:

	_, err := glyphs.GetOrCreate(key)
	var invalidKey *flyweight.InvalidKeyError
	if errors.As(err, &invalidKey) {
	    log.Printf("rejected key %v: %v", invalidKey.Key, invalidKey.Err)
	}

	_, err = glyphs.Dump(ctx, store, codec)
	var snapErr *flyweight.SnapshotError
	if errors.As(err, &snapErr) {
	    log.Printf("dump failed during %s: %v", snapErr.Op, snapErr.Err)
	}

# Thread Safety

  - Registry is safe for concurrent use; GetOrCreate serializes
    check-then-insert so the factory runs at most once per key
  - Keys and Range operate on point-in-time snapshots
  - Store implementations are safe for concurrent use

# Subpackages

  - snapshot: Snapshot storage (memory, SQLite) and codecs
  - config: Typed configuration extraction from YAML/JSON
  - observability: Logging, metrics, and tracing helpers
*/
package flyweight
