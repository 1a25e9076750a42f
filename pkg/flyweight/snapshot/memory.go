package snapshot

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]storedEntry // namespace -> key -> entry
	closed bool
}

// storedEntry holds payload data with metadata for List().
type storedEntry struct {
	payload   []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]storedEntry),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(namespace, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[namespace] == nil {
		m.data[namespace] = make(map[string]storedEntry)
	}

	// Determine sequence number
	seq := 1
	for _, e := range m.data[namespace] {
		if e.sequence >= seq {
			seq = e.sequence + 1
		}
	}

	// Copy payload to avoid retaining caller's slice
	stored := make([]byte, len(payload))
	copy(stored, payload)

	m.data[namespace][key] = storedEntry{
		payload:   stored,
		sequence:  seq,
		timestamp: time.Now().UTC(),
	}

	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(namespace, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ns, ok := m.data[namespace]
	if !ok {
		return nil, ErrNotFound
	}

	e, ok := ns[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]byte, len(e.payload))
	copy(result, e.payload)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List(namespace string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ns, ok := m.data[namespace]
	if !ok {
		return nil, nil
	}

	infos := make([]Info, 0, len(ns))
	for key, e := range ns {
		infos = append(infos, Info{
			Namespace: namespace,
			Key:       key,
			Sequence:  e.sequence,
			Timestamp: e.timestamp,
			Size:      int64(len(e.payload)),
		})
	}

	// Sort by sequence
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})

	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if ns, ok := m.data[namespace]; ok {
		delete(ns, key)
	}
	return nil
}

// DeleteNamespace implements Store.
func (m *MemoryStore) DeleteNamespace(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, namespace)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of entries across all namespaces.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, ns := range m.data {
		count += len(ns)
	}
	return count
}
