// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/logging"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds all addressbook configuration.
type Config struct {
	Store     Store     `yaml:"store"`
	Birthdays Birthdays `yaml:"birthdays"`
	Log       Log       `yaml:"log"`
}

// Store selects where the address book is persisted.
type Store struct {
	Backend string `yaml:"backend"` // "json" | "yaml" | "sqlite"
	Path    string `yaml:"path"`
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	WindowDays         int  `yaml:"window_days"`
	LegacyYearBoundary bool `yaml:"legacy_year_boundary"` // Compare day-of-year ordinals without wrapping
}

// Log holds logger settings.
type Log struct {
	Mode   string `yaml:"mode"`   // "development" | "production"
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Output string `yaml:"output"` // zap output path: "stderr", "stdout" or a file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Backend: BackendJSON,
			Path:    "addressbook.json",
		},
		Birthdays: Birthdays{
			WindowDays: 7,
		},
		Log: Log{
			Mode:   "development",
			Level:  "error",
			Output: "stderr",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendYAML, BackendSQLite:
		// valid
	default:
		return fmt.Errorf("config: store.backend must be %q, %q or %q, got %q",
			BackendJSON, BackendYAML, BackendSQLite, c.Store.Backend)
	}
	if c.Store.Path == "" {
		return errors.New("config: store.path cannot be empty")
	}
	if c.Birthdays.WindowDays < 1 || c.Birthdays.WindowDays > 365 {
		return fmt.Errorf("config: birthdays.window_days must be between 1 and 365, got %d", c.Birthdays.WindowDays)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Mode {
	case "", "development", "production":
		// valid
	default:
		return fmt.Errorf("config: log.mode must be \"development\" or \"production\", got %q", c.Log.Mode)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_STORE_BACKEND, ADDRESSBOOK_STORE_PATH,
// ADDRESSBOOK_WINDOW_DAYS, ADDRESSBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("ADDRESSBOOK_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("ADDRESSBOOK_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_WINDOW_DAYS %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store     *rawStore     `yaml:"store"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Log       *rawLog       `yaml:"log"`
}

type rawStore struct {
	Backend *string `yaml:"backend"`
	Path    *string `yaml:"path"`
}

type rawBirthdays struct {
	WindowDays         *int  `yaml:"window_days"`
	LegacyYearBoundary *bool `yaml:"legacy_year_boundary"`
}

type rawLog struct {
	Mode   *string `yaml:"mode"`
	Level  *string `yaml:"level"`
	Output *string `yaml:"output"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Backend != nil {
			c.Store.Backend = *layer.Store.Backend
		}
		if layer.Store.Path != nil {
			c.Store.Path = *layer.Store.Path
		}
	}
	if layer.Birthdays != nil {
		if layer.Birthdays.WindowDays != nil {
			c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
		}
		if layer.Birthdays.LegacyYearBoundary != nil {
			c.Birthdays.LegacyYearBoundary = *layer.Birthdays.LegacyYearBoundary
		}
	}
	if layer.Log != nil {
		if layer.Log.Mode != nil {
			c.Log.Mode = *layer.Log.Mode
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Output != nil {
			c.Log.Output = *layer.Log.Output
		}
	}
}
