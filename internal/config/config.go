// Package config holds runtime configuration for the tessera core.
//
// Configuration is read from tessera.yaml and covers:
//   - lock acquisition for shared-mutable globals
//   - structured logging
//   - global variables seeded into every new interpreter
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tessera.yaml configuration.
type Config struct {
	Locking LockConfig    `yaml:"locking"`
	Logging LogConfig     `yaml:"logging"`
	Globals GlobalsConfig `yaml:"globals"`
}

// LockConfig controls how shared-mutable global entries are acquired.
type LockConfig struct {
	// Strategy is one of "spin", "backoff" or "block". Defaults to "backoff".
	Strategy string `yaml:"strategy,omitempty"`

	// MinBackoff and MaxBackoff bound the sleep between try-lock attempts
	// when Strategy is "backoff".
	MinBackoff time.Duration `yaml:"min_backoff,omitempty"`
	MaxBackoff time.Duration `yaml:"max_backoff,omitempty"`
}

// LogConfig controls the interpreter logger.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, error. Defaults to "info".
	Level string `yaml:"level,omitempty"`

	// Format is "auto", "text" or "json". Auto picks text on a terminal.
	Format string `yaml:"format,omitempty"`
}

// GlobalsConfig lists initial global variables per storage tier.
//
// Example:
//
//	globals:
//	  shared:
//	    version: 3
//	  mutable:
//	    counter: 0
//	  local:
//	    scratch: [1, 2, 3]
type GlobalsConfig struct {
	Local   map[string]yaml.Node `yaml:"local,omitempty"`
	Shared  map[string]yaml.Node `yaml:"shared,omitempty"`
	Mutable map[string]yaml.Node `yaml:"mutable,omitempty"`
}

const (
	defaultMinBackoff = time.Microsecond
	defaultMaxBackoff = time.Millisecond
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a tessera.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tessera.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for tessera.yaml starting from dir and walking up
// to parent directories. Returns "" and nil error if nothing is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) setDefaults() {
	if c.Locking.Strategy == "" {
		c.Locking.Strategy = LockBackoff
	}
	if c.Locking.MinBackoff == 0 {
		c.Locking.MinBackoff = defaultMinBackoff
	}
	if c.Locking.MaxBackoff == 0 {
		c.Locking.MaxBackoff = defaultMaxBackoff
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatAuto
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Locking.Strategy {
	case LockSpin, LockBackoff, LockBlock:
	default:
		return fmt.Errorf("%s: locking.strategy: unknown strategy %q", path, c.Locking.Strategy)
	}

	if c.Locking.MinBackoff < 0 || c.Locking.MaxBackoff < 0 {
		return fmt.Errorf("%s: locking: backoff durations must not be negative", path)
	}
	if c.Locking.MinBackoff > c.Locking.MaxBackoff {
		return fmt.Errorf("%s: locking: min_backoff %s exceeds max_backoff %s",
			path, c.Locking.MinBackoff, c.Locking.MaxBackoff)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%s: logging.level: %w", path, err)
	}
	switch c.Logging.Format {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%s: logging.format: unknown format %q", path, c.Logging.Format)
	}

	// A name may live in only one tier.
	seen := make(map[string]string)
	tiers := []struct {
		name  string
		names map[string]yaml.Node
	}{
		{"local", c.Globals.Local},
		{"shared", c.Globals.Shared},
		{"mutable", c.Globals.Mutable},
	}
	for _, tier := range tiers {
		for name := range tier.names {
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%s: globals: %q declared in both %s and %s", path, name, prev, tier.name)
			}
			seen[name] = tier.name
		}
	}

	return nil
}
