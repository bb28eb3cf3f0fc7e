package localstate

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	s := openTestStore(t)

	if v, _ := s.Get("missing"); v != "" {
		t.Errorf("expected empty value for missing key, got %q", v)
	}

	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := s.Get(KeyTheme); v != "dark" {
		t.Errorf("expected dark, got %q", v)
	}

	// Overwrite
	if err := s.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := s.Get(KeyTheme); v != "light" {
		t.Errorf("expected light, got %q", v)
	}

	if err := s.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if v, _ := s.Get(KeyTheme); v != "" {
		t.Errorf("expected empty after delete, got %q", v)
	}
}

func TestStore_TokenLifecycle(t *testing.T) {
	s := openTestStore(t)

	if tok, _ := s.Token(); tok != "" {
		t.Errorf("expected no token initially, got %q", tok)
	}

	if err := s.SetToken("t1"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if tok, _ := s.Token(); tok != "t1" {
		t.Errorf("expected t1, got %q", tok)
	}

	// Empty token clears the persisted value
	if err := s.SetToken(""); err != nil {
		t.Fatalf("SetToken(\"\") failed: %v", err)
	}
	if tok, _ := s.Token(); tok != "" {
		t.Errorf("expected cleared token, got %q", tok)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetToken("survives"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	if tok, _ := s2.Token(); tok != "survives" {
		t.Errorf("expected token to survive reopen, got %q", tok)
	}
}
