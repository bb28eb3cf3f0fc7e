// Package config loads storefront client configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	// API configures the remote commerce service.
	API APIConfig `yaml:"api"`

	// State configures durable client-side state.
	State StateConfig `yaml:"state"`

	// UI configures the interactive interface.
	UI UIConfig `yaml:"ui"`

	// Logging configures debug logging.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the commerce API gateway.
type APIConfig struct {
	// BaseURL is the service root including the version prefix.
	BaseURL string `yaml:"base_url"`
}

// StateConfig configures the local state database.
type StateConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// LoggingConfig configures categorized debug logging. When DebugMode is
// false nothing is written.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultDir returns the per-user storefront directory (~/.storefront).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:3000/api/v1",
		},
		State: StateConfig{
			DatabasePath: filepath.Join(DefaultDir(), "state.db"),
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating its directory.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("STOREFRONT_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if path := os.Getenv("STOREFRONT_STATE_DB"); path != "" {
		c.State.DatabasePath = path
	}
	if theme := os.Getenv("STOREFRONT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if os.Getenv("STOREFRONT_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.State.DatabasePath == "" {
		return fmt.Errorf("state.database_path is required")
	}
	switch c.UI.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("ui.theme must be light, dark, or auto (got %q)", c.UI.Theme)
	}
	return nil
}
