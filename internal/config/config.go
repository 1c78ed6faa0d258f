// Package config loads the optional YAML configuration of the kmeanspp CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings that are not passed positionally.
type Config struct {
	// MaxIter is used when MAX_ITER is not given on the command line.
	MaxIter int `yaml:"max_iter"`

	// Seed initializes the random source of the seeder.
	Seed uint64 `yaml:"seed"`

	// Workers parallelizes the assignment pass; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// UniformFallback draws uniformly instead of failing on a degenerate
	// seeding distribution.
	UniformFallback bool `yaml:"uniform_fallback"`

	Log LogConfig `yaml:"log"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxIter: 300,
		Seed:    0,
		Workers: 1,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path on top of Default. A missing file is
// not an error when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.MaxIter <= 0 {
		errs = append(errs, fmt.Errorf("max_iter must be positive, got %d", c.MaxIter))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel maps Level to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
}
