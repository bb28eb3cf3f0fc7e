package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize_ProductionModeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(filepath.Join(dir, "logs"), Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	API("should not appear")
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not be created in production mode")
	}
}

func TestInitialize_DebugModeWritesCategoryFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	Cart("added product %d", 3)
	CloseAll()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var cartLog string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_cart.log") {
			cartLog = filepath.Join(dir, e.Name())
		}
	}
	if cartLog == "" {
		t.Fatal("expected a cart log file")
	}

	data, err := os.ReadFile(cartLog)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "added product 3") {
		t.Errorf("log content missing entry: %s", data)
	}
}

func TestIsCategoryEnabled_Filter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	err := Initialize(dir, Settings{
		DebugMode:  true,
		Level:      "info",
		Categories: map[string]bool{"api": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api category should be disabled")
	}
	if !IsCategoryEnabled(CategoryCart) {
		t.Error("unlisted categories default to enabled")
	}
}
