package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/tategaki/internal/config"
	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/platform"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

type staticTopology []platform.Display

func (s staticTopology) Displays() ([]platform.Display, error) { return s, nil }

func (s staticTopology) PrimaryDisplay() (platform.Display, error) {
	for _, d := range s {
		if d.Primary {
			return d, nil
		}
	}
	return platform.Display{}, nil
}

var laptop = staticTopology{
	{ID: 0, Name: "eDP-1", Primary: true, Bounds: platform.Rect{Width: 1920, Height: 1080}},
}

func testStore(t *testing.T) *windowstate.FileStore {
	t.Helper()
	s, err := windowstate.Open(t.TempDir(), "main", geometry.Size{Width: 800, Height: 600}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestPrintMainUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	printMainUsage(&buf)
	for _, cmd := range []string{"open", "displays", "state show", "state check", "state reset", "state path", "config validate", "mcp serve"} {
		if !strings.Contains(buf.String(), cmd) {
			t.Fatalf("usage missing %q", cmd)
		}
	}
}

func TestStringListFlag(t *testing.T) {
	var l stringList
	if err := l.Set("main"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set(" preferences "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("  "); err == nil {
		t.Fatalf("expected error for empty value")
	}
	if got := l.String(); got != "main,preferences" {
		t.Fatalf("String() = %q", got)
	}
}

func TestWriteDisplaysTable(t *testing.T) {
	displays := []platform.Display{
		{ID: 0, Name: "eDP-1", Primary: true, Bounds: platform.Rect{Width: 1920, Height: 1080}},
		{ID: 1, Name: "HDMI-1", Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
	}
	var buf bytes.Buffer
	if err := writeDisplays(&buf, displays, false); err != nil {
		t.Fatalf("writeDisplays: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "yes") || !strings.Contains(lines[2], "1920,0") || !strings.Contains(lines[2], "2560x1440") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
}

func TestWriteDisplaysJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDisplays(&buf, nil, true); err != nil {
		t.Fatalf("writeDisplays: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty JSON = %q, want []", buf.String())
	}

	buf.Reset()
	if err := writeDisplays(&buf, laptop, true); err != nil {
		t.Fatalf("writeDisplays: %v", err)
	}
	var got []platform.Display
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || !got[0].Primary || got[0].Bounds.Width != 1920 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestStateShow(t *testing.T) {
	store := testStore(t)

	var buf bytes.Buffer
	if err := stateShow(&buf, "main", store, false); err != nil {
		t.Fatalf("stateShow: %v", err)
	}
	if got := buf.String(); got != "main: 800x600 (default)\n" {
		t.Fatalf("output = %q", got)
	}

	if err := store.Save(geometry.At(10, 20, 640, 480)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf.Reset()
	if err := stateShow(&buf, "main", store, true); err != nil {
		t.Fatalf("stateShow: %v", err)
	}
	var out stateShowOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !out.Stored || !out.Geometry.Equal(geometry.At(10, 20, 640, 480)) {
		t.Fatalf("out = %+v", out)
	}
}

func TestStateReset(t *testing.T) {
	store := testStore(t)

	var buf bytes.Buffer
	if err := stateReset(&buf, "main", store); err != nil {
		t.Fatalf("stateReset: %v", err)
	}
	if !strings.Contains(buf.String(), "nothing stored") {
		t.Fatalf("output = %q", buf.String())
	}

	if err := store.Save(geometry.At(0, 0, 800, 600)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf.Reset()
	if err := stateReset(&buf, "main", store); err != nil {
		t.Fatalf("stateReset: %v", err)
	}
	if !strings.Contains(buf.String(), "removed") {
		t.Fatalf("output = %q", buf.String())
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("file still exists: %v", err)
	}
}

func TestStateCheck(t *testing.T) {
	store := testStore(t)
	if err := store.Save(geometry.At(3000, 0, 800, 600)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	err := stateCheck(&buf, "main", store, laptop, store.Default(), geometry.FallbackPrimary, false)
	if err != nil {
		t.Fatalf("stateCheck: %v", err)
	}
	want := "main: stored geometry x=3000 y=0 800x600 is not visible on 1 display(s); opens at x=560 y=240 800x600 (primary fallback)\n"
	if buf.String() != want {
		t.Fatalf("output = %q\nwant     %q", buf.String(), want)
	}

	if err := store.Save(geometry.At(100, 100, 800, 600)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf.Reset()
	if err := stateCheck(&buf, "main", store, laptop, store.Default(), geometry.FallbackPrimary, true); err != nil {
		t.Fatalf("stateCheck: %v", err)
	}
	var out struct {
		Window string `json:"window"`
		Reset  bool   `json:"reset"`
		Stored bool   `json:"stored"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Window != "main" || out.Reset || !out.Stored {
		t.Fatalf("out = %+v", out)
	}
}

func TestOpenStateStoreUsesConfiguredDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = filepath.Join(t.TempDir(), "state")

	store, w, err := openStateStore(cfg, "preferences")
	if err != nil {
		t.Fatalf("openStateStore: %v", err)
	}
	if want := filepath.Join(cfg.StateDir, "window-state-preferences.json"); store.Path() != want {
		t.Fatalf("path = %q, want %q", store.Path(), want)
	}
	if w.Width != 480 {
		t.Fatalf("window = %+v", w)
	}
	if _, err := os.Stat(cfg.StateDir); err != nil {
		t.Fatalf("state dir not created: %v", err)
	}

	if _, _, err := openStateStore(cfg, "missing"); err == nil {
		t.Fatalf("expected error for unknown window")
	}
}

func TestLookupPathAndExplain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("windows:\n  main:\n    width: 1024\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	v, err := lookupPath(res.Config, "windows.main.width")
	if err != nil {
		t.Fatalf("lookupPath: %v", err)
	}
	if v != 1024 {
		t.Fatalf("value = %#v, want 1024", v)
	}
	if _, err := lookupPath(res.Config, "windows.nope"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if _, err := lookupPath(res.Config, "log_level.deeper"); err == nil {
		t.Fatalf("expected error walking into a scalar")
	}

	var buf bytes.Buffer
	if err := explain(&buf, res, "windows.main.width"); err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(buf.String(), "source: file:") || !strings.Contains(buf.String(), ":3:") {
		t.Fatalf("explain output = %q", buf.String())
	}

	buf.Reset()
	if err := explain(&buf, res, "log_level"); err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(buf.String(), "source: default") {
		t.Fatalf("explain output = %q", buf.String())
	}
}

func TestDisplayName(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display = ":1"
	if got := displayName("", cfg); got != ":1" {
		t.Fatalf("displayName = %q", got)
	}
	if got := displayName(":2", cfg); got != ":2" {
		t.Fatalf("displayName = %q", got)
	}
}
