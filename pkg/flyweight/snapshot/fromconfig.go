package snapshot

import (
	"fmt"

	"github.com/randalmurphal/flyweight/pkg/flyweight/config"
)

// FromConfig builds a Store from a configuration section.
//
// Recognized keys:
//   - driver: "memory" (default) or "sqlite"
//   - path: database file path, required for the sqlite driver
//
// Example YAML:
//
//	snapshot:
//	  driver: sqlite
//	  path: ./flyweights.db
func FromConfig(cfg config.Config) (Store, error) {
	driver := cfg.String("driver", "memory")
	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		path := cfg.String("path", "")
		if path == "" {
			return nil, fmt.Errorf("sqlite snapshot store requires a path")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown snapshot driver: %q", driver)
	}
}
