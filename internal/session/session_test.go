package session

import (
	"os"
	"testing"
)

func setupHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LEAFDOCTOR_TOKEN", "")
	os.Unsetenv("LEAFDOCTOR_TOKEN")
}

func TestLoadMissingReturnsEmpty(t *testing.T) {
	setupHome(t)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LoggedIn() {
		t.Error("empty session should not be logged in")
	}
}

func TestSaveLoadClear(t *testing.T) {
	setupHome(t)

	if err := Save(&Session{AccessToken: "tok-123", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.LoggedIn() {
		t.Error("expected logged in session")
	}
	if s.AccessToken != "tok-123" || s.Email != "alice@example.com" {
		t.Errorf("unexpected session: %+v", s)
	}

	if got := Token(); got != "tok-123" {
		t.Errorf("Token() = %q, want tok-123", got)
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	s, err = Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if s.LoggedIn() {
		t.Error("session should be cleared")
	}
}

func TestClearMissingIsNoError(t *testing.T) {
	setupHome(t)

	if err := Clear(); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}

func TestTokenEnvOverride(t *testing.T) {
	setupHome(t)

	if err := Save(&Session{AccessToken: "stored"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("LEAFDOCTOR_TOKEN", "from-env")

	if got := Token(); got != "from-env" {
		t.Errorf("Token() = %q, want from-env", got)
	}
}

func TestSessionFilePermissions(t *testing.T) {
	setupHome(t)

	if err := Save(&Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}
