package windowstate

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/tategaki/internal/geometry"
)

var defaultSize = geometry.Size{Width: 800, Height: 600}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openStore(t *testing.T, dir, name string) *FileStore {
	t.Helper()
	s, err := Open(dir, name, defaultSize, quietLogger())
	if err != nil {
		t.Fatalf("Open(%q): %v", name, err)
	}
	return s
}

func writeStateFile(t *testing.T, s *FileStore, content string) {
	t.Helper()
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestOpen_PathUsesStoreName(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir, "main")

	if want := filepath.Join(dir, "window-state-main.json"); s.Path() != want {
		t.Fatalf("Path() = %q, want %q", s.Path(), want)
	}
}

func TestOpen_RejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "  ", "a/b", "..", "."} {
		if _, err := Open(t.TempDir(), name, defaultSize, quietLogger()); err == nil {
			t.Errorf("expected error for window name %q", name)
		}
	}
}

func TestRestore_MissingFileReturnsDefault(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")

	got := s.Restore()
	if !got.Equal(geometry.FromSize(defaultSize)) {
		t.Fatalf("Restore() = %s, want default", got)
	}
	if got.Positioned() {
		t.Fatalf("expected default to be unpositioned")
	}
}

func TestSaveRestore_RoundTrip(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	want := geometry.At(2100, 120, 1024, 768)

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Restore(); !got.Equal(want) {
		t.Fatalf("Restore() = %s, want %s", got, want)
	}

	// A second store over the same file sees the same record.
	again := openStore(t, filepath.Dir(s.Path()), "main")
	if got := again.Restore(); !got.Equal(want) {
		t.Fatalf("reopened Restore() = %s, want %s", got, want)
	}
}

func TestSaveRestore_UnpositionedRoundTrip(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	want := geometry.Record{Width: 640, Height: 480}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Restore(); !got.Equal(want) {
		t.Fatalf("Restore() = %s, want %s", got, want)
	}
}

func TestSave_WritesDocumentLayout(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	if err := s.Save(geometry.At(560, 240, 800, 600)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]map[string]int
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rec, ok := doc["window-state"]
	if !ok {
		t.Fatalf("expected window-state key, got %s", data)
	}
	if rec["x"] != 560 || rec["y"] != 240 || rec["width"] != 800 || rec["height"] != 600 {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestSave_PreservesOtherKeys(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	writeStateFile(t, s, `{"theme":"dark","window-state":{"width":10,"height":10}}`)

	if err := s.Save(geometry.At(1, 2, 300, 200)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(doc["theme"]) != `"dark"` {
		t.Fatalf("expected theme to survive, got %s", data)
	}
}

func TestRestore_DegradesToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt json", `{"window-state": {`},
		{"not an object", `[1,2,3]`},
		{"null document", `null`},
		{"missing key", `{"other": 1}`},
		{"null entry", `{"window-state": null}`},
		{"entry is a number", `{"window-state": 5}`},
		{"string width", `{"window-state": {"width": "800", "height": 600}}`},
		{"missing height", `{"window-state": {"x": 1, "y": 1, "width": 800}}`},
		{"zero width", `{"window-state": {"x": 1, "y": 1, "width": 0, "height": 600}}`},
		{"negative height", `{"window-state": {"width": 800, "height": -5}}`},
		{"huge width", `{"window-state": {"x": 1e18, "y": 0, "width": 9e18, "height": 600}}`},
		{"width past uint16", `{"window-state": {"x": 0, "y": 0, "width": 65536, "height": 600}}`},
		{"x past int16", `{"window-state": {"x": 32768, "y": 0, "width": 800, "height": 600}}`},
		{"y below int16", `{"window-state": {"x": 0, "y": -32769, "width": 800, "height": 600}}`},
		{"fractional size rounds to zero", `{"window-state": {"width": 0.4, "height": 600}}`},
		{"boolean x", `{"window-state": {"x": true, "y": 1, "width": 800, "height": 600}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openStore(t, t.TempDir(), "main")
			writeStateFile(t, s, tt.content)

			got := s.Restore()
			if !got.Equal(geometry.FromSize(defaultSize)) {
				t.Fatalf("Restore() = %s, want default", got)
			}
			if _, ok := s.Lookup(); ok {
				t.Fatalf("Lookup() reported a valid record")
			}
		})
	}
}

func TestOpen_AcceptsDottedNames(t *testing.T) {
	s := openStore(t, t.TempDir(), "draft..v2")
	if filepath.Base(s.Path()) != "window-state-draft..v2.json" {
		t.Fatalf("Path() = %q", s.Path())
	}
}

func TestRestore_AcceptsCoordinateRangeLimits(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	writeStateFile(t, s, `{"window-state": {"x": -32768, "y": 32767, "width": 65535, "height": 1}}`)

	got, ok := s.Lookup()
	if want := geometry.At(-32768, 32767, 65535, 1); !ok || !got.Equal(want) {
		t.Fatalf("Lookup() = %s, %v, want %s", got, ok, want)
	}
}

func TestRestore_RoundsFractionalValues(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	writeStateFile(t, s, `{"window-state": {"x": 560.5, "y": 239.4, "width": 800, "height": 600}}`)

	got := s.Restore()
	if want := geometry.At(561, 239, 800, 600); !got.Equal(want) {
		t.Fatalf("Restore() = %s, want %s", got, want)
	}
}

func TestSave_FailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// The store directory is a regular file, so nothing can be written.
	s := openStore(t, blocker, "main")

	if err := s.Save(geometry.At(0, 0, 800, 600)); err == nil {
		t.Fatalf("expected Save to fail")
	}
	if got := s.Restore(); !got.Equal(geometry.FromSize(defaultSize)) {
		t.Fatalf("Restore() after failed save = %s, want default", got)
	}
}

func TestReset(t *testing.T) {
	s := openStore(t, t.TempDir(), "main")
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset on missing file: %v", err)
	}

	if err := s.Save(geometry.At(5, 5, 800, 600)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := s.Restore(); got.Positioned() {
		t.Fatalf("expected default after reset, got %s", got)
	}
}

func TestStoresAreIndependentPerWindow(t *testing.T) {
	dir := t.TempDir()
	main := openStore(t, dir, "main")
	prefs := openStore(t, dir, "preferences")

	if err := main.Save(geometry.At(10, 10, 900, 700)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := prefs.Restore(); got.Positioned() {
		t.Fatalf("expected preferences store to be unaffected, got %s", got)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(defaultSize)
	if got := m.Restore(); !got.Equal(geometry.FromSize(defaultSize)) {
		t.Fatalf("Restore() = %s, want default", got)
	}

	rec := geometry.At(1, 2, 300, 400)
	if err := m.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	*rec.X = 50
	if got := m.Restore(); *got.X != 1 {
		t.Fatalf("expected saved record to be copied, got %s", got)
	}
	if m.Saves() != 1 {
		t.Fatalf("Saves() = %d, want 1", m.Saves())
	}
}
