package flyweight

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/flyweight/pkg/flyweight/observability"
)

// Factory constructs a shared payload from a key's fields.
// It must be deterministic per key and must not fail; keys that cannot
// produce a payload should be rejected up front with WithValidator.
type Factory[K comparable, V any] func(K) V

// Registry is a thread-safe flyweight cache: it holds one shared payload
// per distinct key and hands the same payload to every caller that asks
// for an equal key. Payloads are built lazily by the factory on first
// request and are never evicted, so the registry grows monotonically
// with the number of distinct keys.
//
// Payloads must be treated as immutable once stored. For the identity
// guarantee to be observable, use a pointer payload type (V = *T);
// equal keys then yield the same pointer.
type Registry[K comparable, V any] struct {
	name     string
	factory  Factory[K, V]
	validate func(K) error
	sizer    func(V) int64
	onCreate func(K, V)
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager

	mu      sync.RWMutex
	entries map[K]V

	hits   atomic.Int64
	misses atomic.Int64
	bytes  atomic.Int64
}

// New creates an empty registry with the given factory.
//
// Panics if factory is nil.
func New[K comparable, V any](factory Factory[K, V], opts ...Option[K, V]) *Registry[K, V] {
	if factory == nil {
		panic("flyweight: factory must not be nil")
	}

	cfg := defaultRegConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry[K, V]{
		name:     cfg.name,
		factory:  factory,
		validate: cfg.validate,
		sizer:    cfg.sizer,
		onCreate: cfg.onCreate,
		logger:   cfg.logger,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
		entries:  make(map[K]V),
	}
	if cfg.metrics {
		r.metrics = observability.NewMetricsRecorder()
	}
	if cfg.tracing {
		r.spans = observability.NewSpanManager()
	}
	return r
}

// Name returns the registry's name, used in logs, metrics, and as the
// snapshot namespace.
func (r *Registry[K, V]) Name() string {
	return r.name
}

// GetOrCreate returns the shared payload for a key, constructing it with
// the factory on first request. Every call with an equal key returns the
// identical stored payload, never a copy. The factory is called at most
// once per key, even under concurrent access.
//
// The only error condition is key validation: when a validator is
// configured and rejects the key, GetOrCreate returns *InvalidKeyError
// and the registry is untouched. Without a validator the error is
// always nil.
func (r *Registry[K, V]) GetOrCreate(key K) (V, error) {
	if r.validate != nil {
		if err := r.validate(key); err != nil {
			var zero V
			return zero, &InvalidKeyError{Key: key, Err: err}
		}
	}

	// Fast path: payload already shared
	r.mu.RLock()
	v, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		r.recordHit()
		return v, nil
	}

	v, size, elapsed, created := r.create(key)
	if !created {
		// Another caller won the race and constructed it first.
		r.recordHit()
		return v, nil
	}

	r.misses.Add(1)
	r.metrics.RecordLookup(context.Background(), r.name, false)
	r.metrics.RecordConstruct(context.Background(), r.name, elapsed, size)
	observability.LogConstruct(r.logger, r.name, key, float64(elapsed.Milliseconds()), size)
	if r.onCreate != nil {
		r.onCreate(key, v)
	}
	return v, nil
}

// create constructs and stores the payload for a key under the write
// lock, double-checking for a concurrent insert. The returned flag is
// false when the payload already existed.
func (r *Registry[K, V]) create(key K) (V, int64, time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.entries[key]; ok {
		return v, 0, 0, false
	}

	start := time.Now()
	v := r.factory(key)
	r.entries[key] = v

	var size int64
	if r.sizer != nil {
		size = r.sizer(v)
		r.bytes.Add(size)
	}
	return v, size, time.Since(start), true
}

// recordHit accounts a request served by an existing payload.
func (r *Registry[K, V]) recordHit() {
	r.hits.Add(1)
	r.metrics.RecordLookup(context.Background(), r.name, true)
}

// Get returns the payload for a key and whether it exists.
// It is a read-only probe: it never constructs a payload and does not
// affect sharing statistics.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key has a payload in the registry.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Seed installs a prebuilt payload for a key, typically during warm
// start. Seeding is first-wins: if the key already has a payload,
// Seed returns ErrDuplicate and the stored payload is kept, preserving
// the identity guarantee for callers already holding it.
//
// Seed does not invoke the on-create hook and does not affect hit/miss
// statistics. A configured validator applies.
func (r *Registry[K, V]) Seed(key K, value V) error {
	if r.validate != nil {
		if err := r.validate(key); err != nil {
			return &InvalidKeyError{Key: key, Err: err}
		}
	}

	r.mu.Lock()
	if _, ok := r.entries[key]; ok {
		r.mu.Unlock()
		return ErrDuplicate
	}
	r.entries[key] = value

	var size int64
	if r.sizer != nil {
		size = r.sizer(value)
		r.bytes.Add(size)
	}
	r.mu.Unlock()

	observability.LogSeed(r.logger, r.name, key, size)
	return nil
}

// Len returns the number of distinct payloads currently held.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns a snapshot of all keys with a payload in the registry.
// The order is not guaranteed. The returned slice is the caller's own;
// later registry growth does not affect it.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Range iterates over all entries in the registry.
// The function fn is called for each entry. If fn returns false,
// iteration stops.
//
// Range iterates over a snapshot of the registry, so it is safe to call
// GetOrCreate or Seed during iteration without affecting the current
// iteration.
func (r *Registry[K, V]) Range(fn func(K, V) bool) {
	for k, v := range r.snapshotEntries() {
		if !fn(k, v) {
			return
		}
	}
}

// snapshotEntries copies the entry map under the read lock.
func (r *Registry[K, V]) snapshotEntries() map[K]V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[K]V, len(r.entries))
	for k, v := range r.entries {
		snapshot[k] = v
	}
	return snapshot
}
