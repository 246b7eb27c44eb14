// Package config provides environment-driven configuration for lexigraph.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// Config holds all application configuration values.
type Config struct {
	DgraphAddr       string
	LogLevel         string
	BatchSize        int // statements per flush; 0 selects a size from the byte budget
	CompressionLevel int // gzip level for emitted statement streams
	Workers          int // parse/transform workers for conversion
	StrictRows       bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DgraphAddr: envOrDefault("LEXIGRAPH_DGRAPH_ADDR", "localhost:9080"),
		LogLevel:   envOrDefault("LEXIGRAPH_LOG_LEVEL", "info"),
		StrictRows: envOrDefault("LEXIGRAPH_STRICT_ROWS", "false") == "true",
	}

	var err error

	if cfg.BatchSize, err = envInt("LEXIGRAPH_BATCH_SIZE", 0); err != nil {
		return nil, err
	}

	// Level 2 favors throughput over ratio: the dump is written once and read
	// once by the bulk loader, so cheap compression wins.
	if cfg.CompressionLevel, err = envInt("LEXIGRAPH_COMPRESSION_LEVEL", 2); err != nil {
		return nil, err
	}

	if cfg.Workers, err = envInt("LEXIGRAPH_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.DgraphAddr == "" {
		return fmt.Errorf("dgraph address cannot be empty")
	}

	if c.BatchSize < 0 {
		return fmt.Errorf("batch size cannot be negative, got %d", c.BatchSize)
	}

	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression level must be between 1 and 9, got %d", c.CompressionLevel)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}

	return n, nil
}
