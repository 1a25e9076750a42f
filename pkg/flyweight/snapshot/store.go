// Package snapshot provides persistent storage for registry contents,
// enabling warm starts across process restarts.
package snapshot

import (
	"errors"
	"time"
)

// Store persists encoded registry entries.
// Implementations must be safe for concurrent use.
//
// Entries are grouped by namespace, typically the registry name, so
// several registries can share one store.
type Store interface {
	// Save stores a payload for a key within a namespace.
	// Overwrites if an entry for (namespace, key) already exists.
	Save(namespace, key string, payload []byte) error

	// Load retrieves a payload.
	// Returns ErrNotFound if the entry doesn't exist.
	Load(namespace, key string) ([]byte, error)

	// List returns all entries in a namespace, ordered by sequence.
	// Returns empty slice (not error) if the namespace has no entries.
	List(namespace string) ([]Info, error)

	// Delete removes a specific entry.
	// Returns nil if the entry doesn't exist.
	Delete(namespace, key string) error

	// DeleteNamespace removes all entries in a namespace.
	// Returns nil if the namespace has no entries.
	DeleteNamespace(namespace string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides entry metadata without loading the payload.
type Info struct {
	Namespace string
	Key       string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot storage.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("snapshot entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
