// ABOUTME: Configuration for folio: backend choice, data location and store behavior
// ABOUTME: Handles YAML loading, XDG config paths and FOLIO_* environment overrides

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Config holds folio settings.
type Config struct {
	// Backend selects the repository: sqlite, badger or memory (default: sqlite)
	Backend string `yaml:"backend"`

	// DataDir holds the database files (default: $XDG_DATA_HOME/folio)
	DataDir string `yaml:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error (default: warn)
	LogLevel string `yaml:"log_level"`

	UniqueCategories bool `yaml:"unique_categories"`
	CascadeRename    bool `yaml:"cascade_rename"`
	NonAtomicUpdates bool `yaml:"non_atomic_updates"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendSQLite,
		LogLevel: "warn",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadConfig loads configuration from disk and applies environment
// overrides. Defaults are returned if no file exists.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.DataDir = expandPath(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the configured log level, falling back to warn.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// SQLitePath is the database file for the sqlite backend. Empty means the
// backend's XDG default.
func (c *Config) SQLitePath() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "folio.db")
}

// BadgerDir is the directory for the badger backend. Empty means the
// backend's XDG default.
func (c *Config) BadgerDir() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "badger")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FOLIO_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("FOLIO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
