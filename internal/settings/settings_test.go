package settings

import (
	"errors"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "splitflap.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("empty path should fail")
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	s := openStore(t)

	if _, err := s.DisplayName(); !errors.Is(err, ErrNotSet) {
		t.Errorf("unset name should return ErrNotSet, got %v", err)
	}

	if err := s.SetDisplayName("  Alex  "); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	name, err := s.DisplayName()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if name != "Alex" {
		t.Errorf("expected trimmed name, got %q", name)
	}

	// Overwrite.
	if err := s.SetDisplayName("Sam"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if name, _ = s.DisplayName(); name != "Sam" {
		t.Errorf("expected Sam, got %q", name)
	}
}

func TestSetDisplayNameRejectsInvalid(t *testing.T) {
	s := openStore(t)

	if err := s.SetDisplayName(""); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := s.SetDisplayName("way too long a name for the board"); err == nil {
		t.Error("overlong name should be rejected")
	}
	if err := s.SetDisplayName("no*stars"); err == nil {
		t.Error("unmappable characters should be rejected")
	}

	// Failed sets must not leave anything behind.
	if _, err := s.DisplayName(); !errors.Is(err, ErrNotSet) {
		t.Errorf("name should still be unset, got %v", err)
	}
}

func TestPreferredInstallable(t *testing.T) {
	s := openStore(t)

	if _, err := s.PreferredInstallable(); !errors.Is(err, ErrNotSet) {
		t.Errorf("unset preference should return ErrNotSet, got %v", err)
	}
	if err := s.SetPreferredInstallable("clock"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := s.PreferredInstallable()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "clock" {
		t.Errorf("expected clock, got %q", got)
	}
}

func TestAdminDefaultsFalse(t *testing.T) {
	s := openStore(t)

	admin, err := s.Admin()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if admin {
		t.Error("admin should default to false")
	}

	if err := s.SetAdmin(true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	admin, err = s.Admin()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !admin {
		t.Error("admin should be true after set")
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitflap.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDisplayName("Alex"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	name, err := s.DisplayName()
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if name != "Alex" {
		t.Errorf("expected persisted name, got %q", name)
	}
}
