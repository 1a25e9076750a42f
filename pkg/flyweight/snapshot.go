package flyweight

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/flyweight/pkg/flyweight/observability"
	"github.com/randalmurphal/flyweight/pkg/flyweight/snapshot"
)

// Dump persists every payload in the registry to the store, using the
// registry's name as the namespace. Entries are encoded with the codec
// and saved one at a time; existing store entries for the same keys are
// overwritten.
//
// Dump walks a point-in-time snapshot of the registry, so payloads
// created concurrently may or may not be included. It returns the
// number of entries saved. Cancellation is checked between entries;
// on error the count reflects the entries saved before the failure.
func (r *Registry[K, V]) Dump(ctx context.Context, store snapshot.Store, codec snapshot.Codec[K, V]) (int, error) {
	if store == nil {
		return 0, ErrNilStore
	}
	if codec == nil {
		return 0, ErrNilCodec
	}

	done := observability.TimedOperation()
	_, span := r.spans.StartDumpSpan(ctx, r.name)

	entries := r.snapshotEntries()
	observability.LogDumpStart(r.logger, r.name, len(entries))

	saved := 0
	var dumpErr error
	for k, v := range entries {
		if err := ctx.Err(); err != nil {
			dumpErr = err
			break
		}
		encodedKey, err := codec.EncodeKey(k)
		if err != nil {
			dumpErr = &SnapshotError{Registry: r.name, Op: "encode", Err: err}
			break
		}
		payload, err := codec.EncodeValue(v)
		if err != nil {
			dumpErr = &SnapshotError{Registry: r.name, Op: "encode", Err: err}
			break
		}
		if err := store.Save(r.name, encodedKey, payload); err != nil {
			dumpErr = &SnapshotError{Registry: r.name, Op: "save", Err: err}
			break
		}
		saved++
	}

	r.spans.EndSpanWithError(span, dumpErr)
	r.metrics.RecordSnapshot(ctx, r.name, "dump", saved)

	if dumpErr != nil {
		observability.LogSnapshotError(r.logger, r.name, "dump", dumpErr)
		return saved, dumpErr
	}
	observability.LogDumpComplete(r.logger, r.name, saved, done())
	return saved, nil
}

// Warm restores payloads from the store into the registry, using the
// registry's name as the namespace. Entries are decoded with the codec
// and installed with Seed semantics: keys already present keep their
// stored payload and are skipped, so warming never breaks the identity
// guarantee for payloads already handed out.
//
// It returns the number of entries restored, not counting skipped
// duplicates. Cancellation is checked between entries; on error the
// count reflects the entries restored before the failure.
func (r *Registry[K, V]) Warm(ctx context.Context, store snapshot.Store, codec snapshot.Codec[K, V]) (int, error) {
	if store == nil {
		return 0, ErrNilStore
	}
	if codec == nil {
		return 0, ErrNilCodec
	}

	done := observability.TimedOperation()
	spanCtx, span := r.spans.StartWarmSpan(ctx, r.name)

	infos, err := store.List(r.name)
	if err != nil {
		warmErr := &SnapshotError{Registry: r.name, Op: "list", Err: err}
		r.spans.EndSpanWithError(span, warmErr)
		observability.LogSnapshotError(r.logger, r.name, "warm", warmErr)
		return 0, warmErr
	}
	observability.LogWarmStart(r.logger, r.name, len(infos))

	restored, skipped := 0, 0
	var warmErr error
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			warmErr = err
			break
		}
		payload, err := store.Load(r.name, info.Key)
		if err != nil {
			warmErr = &SnapshotError{Registry: r.name, Op: "load", Err: err}
			break
		}
		key, err := codec.DecodeKey(info.Key)
		if err != nil {
			warmErr = &SnapshotError{Registry: r.name, Op: "decode", Err: err}
			break
		}
		value, err := codec.DecodeValue(payload)
		if err != nil {
			warmErr = &SnapshotError{Registry: r.name, Op: "decode", Err: err}
			break
		}
		if err := r.Seed(key, value); err != nil {
			if errors.Is(err, ErrDuplicate) {
				skipped++
				continue
			}
			warmErr = err
			break
		}
		restored++
	}

	if skipped > 0 {
		r.spans.AddSpanEvent(spanCtx, "flyweight.warm.skipped",
			attribute.Int("entries", skipped))
	}
	r.spans.EndSpanWithError(span, warmErr)
	r.metrics.RecordSnapshot(ctx, r.name, "warm", restored)

	if warmErr != nil {
		observability.LogSnapshotError(r.logger, r.name, "warm", warmErr)
		return restored, warmErr
	}
	observability.LogWarmComplete(r.logger, r.name, restored, done())
	return restored, nil
}
