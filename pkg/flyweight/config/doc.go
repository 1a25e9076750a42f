/*
Package config provides type-safe configuration extraction from map[string]any.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
This is useful for extracting registry and snapshot settings from YAML/JSON
documents without verbose type assertions and nil checks.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "name":    "glyphs",
	    "metrics": true,
	    "snapshot": map[string]any{
	        "driver": "sqlite",
	        "path":   "./flyweights.db",
	    },
	})

	name := cfg.String("name", "registry")     // "glyphs"
	metrics := cfg.Bool("metrics", false)      // true
	driver := cfg.Sub("snapshot").String("driver", "memory") // "sqlite"

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds
  - time.Duration: used directly

Numeric types handle reasonable conversions:
  - int from float64 (truncated)
  - float64 from int

All methods return the default value if:
  - The key is missing
  - The value cannot be converted to the requested type
  - The conversion would lose precision (e.g., float to int with fraction)

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("registry.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

# Nested Sections

Sub extracts a nested configuration block as its own Config:

	snap := cfg.Sub("snapshot")
	driver := snap.String("driver", "memory")

Sub returns an empty Config for missing or non-map keys, so chained
lookups never panic.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
