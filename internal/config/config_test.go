package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.BaseURL != "http://127.0.0.1:3000/api/v1" {
		t.Errorf("unexpected default base URL: %s", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected Theme=auto, got %s", cfg.UI.Theme)
	}
	if cfg.Logging.DebugMode {
		t.Error("expected DebugMode off by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("STOREFRONT_STATE_DB", "")
	t.Setenv("STOREFRONT_THEME", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://shop.example.com/api/v1"
	cfg.UI.Theme = "dark"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.API.BaseURL != "https://shop.example.com/api/v1" {
		t.Errorf("expected saved base URL, got %s", loaded.API.BaseURL)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.UI.Theme)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("expected defaults for missing file, got %s", cfg.API.BaseURL)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://api.internal:9000/api/v1")
	t.Setenv("STOREFRONT_THEME", "light")
	t.Setenv("STOREFRONT_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.API.BaseURL != "http://api.internal:9000/api/v1" {
		t.Errorf("expected env base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.UI.Theme)
	}
	if !cfg.Logging.DebugMode {
		t.Error("expected DebugMode on via env")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.API.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty base URL")
	}

	cfg = DefaultConfig()
	cfg.UI.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown theme")
	}
}
