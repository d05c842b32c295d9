package apppath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir_UsesXDGConfigHomeWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(td, "tategaki"); got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", "tategaki"); got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestStateDir_CreatesDirectory(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := StateDir("")
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("stat state dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be a directory", got)
	}
}

func TestStateDir_OverrideWins(t *testing.T) {
	override := filepath.Join(t.TempDir(), "nested", "state")

	got, err := StateDir(override)
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	if got != override {
		t.Fatalf("StateDir() = %q, want %q", got, override)
	}
	if _, err := os.Stat(override); err != nil {
		t.Fatalf("expected override dir to be created: %v", err)
	}
}

func TestLogPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	got, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath() error: %v", err)
	}
	if !strings.HasSuffix(got, "/tategaki/tategaki.log") {
		t.Fatalf("LogPath() = %q, missing suffix", got)
	}
}
