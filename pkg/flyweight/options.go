package flyweight

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/flyweight/pkg/flyweight/config"
)

// regConfig holds construction-time configuration for a Registry.
type regConfig[K comparable, V any] struct {
	name     string
	validate func(K) error
	sizer    func(V) int64
	onCreate func(K, V)
	logger   *slog.Logger
	metrics  bool
	tracing  bool
}

// defaultRegConfig returns the default registry configuration.
func defaultRegConfig[K comparable, V any]() regConfig[K, V] {
	return regConfig[K, V]{
		name: uuid.New().String(),
	}
}

// Option configures a Registry at construction.
//
// Go cannot infer the key and value types from an option's arguments
// alone, so options are instantiated explicitly:
//
//	r := flyweight.New(newGlyph,
//	    flyweight.WithName[GlyphKey, *Glyph]("glyphs"),
//	)
type Option[K comparable, V any] func(*regConfig[K, V])

// WithName sets the registry name used in logs, metrics, and as the
// snapshot namespace. Default: a generated UUID.
//
// Panics if name is empty.
func WithName[K comparable, V any](name string) Option[K, V] {
	if name == "" {
		panic("flyweight: name must not be empty")
	}
	return func(c *regConfig[K, V]) {
		c.name = name
	}
}

// WithValidator sets a key validator. GetOrCreate and Seed reject keys
// the validator errors on, returning *InvalidKeyError before any
// payload is constructed or stored.
//
// Panics if fn is nil.
func WithValidator[K comparable, V any](fn func(K) error) Option[K, V] {
	if fn == nil {
		panic("flyweight: validator must not be nil")
	}
	return func(c *regConfig[K, V]) {
		c.validate = fn
	}
}

// WithSizer sets a function that reports a payload's size in bytes.
// Sizes accumulate into Stats().Bytes and feed the payload size metric.
//
// Panics if fn is nil.
func WithSizer[K comparable, V any](fn func(V) int64) Option[K, V] {
	if fn == nil {
		panic("flyweight: sizer must not be nil")
	}
	return func(c *regConfig[K, V]) {
		c.sizer = fn
	}
}

// WithOnCreate sets a hook invoked after the factory constructs a new
// payload. The hook runs outside the registry lock, so it may call back
// into the registry.
//
// Panics if fn is nil.
func WithOnCreate[K comparable, V any](fn func(K, V)) Option[K, V] {
	if fn == nil {
		panic("flyweight: on-create hook must not be nil")
	}
	return func(c *regConfig[K, V]) {
		c.onCreate = fn
	}
}

// WithLogger sets a structured logger for registry events.
// A nil logger disables logging (the default).
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(c *regConfig[K, V]) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for the registry.
// Disabled by default.
func WithMetrics[K comparable, V any](enabled bool) Option[K, V] {
	return func(c *regConfig[K, V]) {
		c.metrics = enabled
	}
}

// WithTracing enables OpenTelemetry tracing for snapshot operations.
// Disabled by default.
func WithTracing[K comparable, V any](enabled bool) Option[K, V] {
	return func(c *regConfig[K, V]) {
		c.tracing = enabled
	}
}

// OptionsFromConfig maps a configuration document to registry options.
//
// Recognized keys:
//   - name: registry name
//   - metrics: enable OpenTelemetry metrics
//   - tracing: enable OpenTelemetry tracing
//
// Unrecognized keys are ignored, so the same document can carry a
// snapshot section for snapshot.FromConfig.
func OptionsFromConfig[K comparable, V any](cfg config.Config) []Option[K, V] {
	var opts []Option[K, V]
	if name := cfg.String("name", ""); name != "" {
		opts = append(opts, WithName[K, V](name))
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics[K, V](true))
	}
	if cfg.Bool("tracing", false) {
		opts = append(opts, WithTracing[K, V](true))
	}
	return opts
}
