package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/randalmurphal/flyweight/pkg/flyweight/config"
	"github.com/randalmurphal/flyweight/pkg/flyweight/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_Memory(t *testing.T) {
	cfg := config.New(map[string]any{"driver": "memory"})

	store, err := snapshot.FromConfig(cfg)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*snapshot.MemoryStore)
	assert.True(t, ok, "Expected MemoryStore")
}

func TestFromConfig_DefaultsToMemory(t *testing.T) {
	cfg := config.New(nil)

	store, err := snapshot.FromConfig(cfg)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*snapshot.MemoryStore)
	assert.True(t, ok, "Expected MemoryStore for empty config")
}

func TestFromConfig_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fw.db")
	cfg := config.New(map[string]any{
		"driver": "sqlite",
		"path":   dbPath,
	})

	store, err := snapshot.FromConfig(cfg)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*snapshot.SQLiteStore)
	assert.True(t, ok, "Expected SQLiteStore")

	// Store should be usable
	require.NoError(t, store.Save("glyphs", "key-a", []byte("data")))
	data, err := store.Load("glyphs", "key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
}

func TestFromConfig_SQLiteRequiresPath(t *testing.T) {
	cfg := config.New(map[string]any{"driver": "sqlite"})

	_, err := snapshot.FromConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a path")
}

func TestFromConfig_UnknownDriver(t *testing.T) {
	cfg := config.New(map[string]any{"driver": "redis"})

	_, err := snapshot.FromConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown snapshot driver")
}

func TestFromConfig_FromYAMLSection(t *testing.T) {
	yaml := `snapshot:
  driver: memory
`
	cfg, err := config.FromYAML([]byte(yaml))
	require.NoError(t, err)

	store, err := snapshot.FromConfig(cfg.Sub("snapshot"))
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*snapshot.MemoryStore)
	assert.True(t, ok)
}
