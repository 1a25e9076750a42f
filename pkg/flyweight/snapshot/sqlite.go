package snapshot

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists snapshots to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite snapshot store.
// The path should be a file path (e.g., "./flyweights.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Create table and index
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS flyweights (
			namespace TEXT NOT NULL,
			entry_key TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (namespace, entry_key)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flyweights_namespace
		ON flyweights(namespace)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(namespace, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	// Use upsert to handle overwrites
	// Calculate sequence as max + 1 for this namespace
	_, err := s.db.Exec(`
		INSERT INTO flyweights (namespace, entry_key, sequence, timestamp, payload)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(sequence) FROM flyweights WHERE namespace = ?), 0) + 1,
			?, ?
		)
		ON CONFLICT(namespace, entry_key) DO UPDATE SET
			sequence = (SELECT MAX(sequence) FROM flyweights WHERE namespace = excluded.namespace) + 1,
			timestamp = excluded.timestamp,
			payload = excluded.payload
	`, namespace, key, namespace, time.Now().UTC().Format(time.RFC3339Nano), payload)

	if err != nil {
		return fmt.Errorf("save snapshot entry: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var payload []byte
	err := s.db.QueryRow(`
		SELECT payload FROM flyweights
		WHERE namespace = ? AND entry_key = ?
	`, namespace, key).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot entry: %w", err)
	}
	return payload, nil
}

// List implements Store.
func (s *SQLiteStore) List(namespace string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT entry_key, sequence, timestamp, LENGTH(payload)
		FROM flyweights
		WHERE namespace = ?
		ORDER BY sequence
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("list snapshot entries: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var timestamp string
		if err := rows.Scan(&info.Key, &info.Sequence, &timestamp, &info.Size); err != nil {
			return nil, fmt.Errorf("scan snapshot info: %w", err)
		}
		info.Namespace = namespace
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot entries: %w", err)
	}

	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM flyweights
		WHERE namespace = ? AND entry_key = ?
	`, namespace, key)
	if err != nil {
		return fmt.Errorf("delete snapshot entry: %w", err)
	}
	return nil
}

// DeleteNamespace implements Store.
func (s *SQLiteStore) DeleteNamespace(namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM flyweights WHERE namespace = ?
	`, namespace)
	if err != nil {
		return fmt.Errorf("delete namespace entries: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
