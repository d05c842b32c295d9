// Package windowstate persists the last known geometry of each window kind.
//
// Every window kind gets its own JSON document named
// "window-state-<windowName>.json" whose "window-state" member holds the
// record:
//
//	{"window-state": {"x": 560, "y": 240, "width": 800, "height": 600}}
//
// Reads never fail: anything missing or malformed restores the default size.
package windowstate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/1broseidon/tategaki/internal/geometry"
)

const (
	// Key is the document member holding the record.
	Key = "window-state"
	// NamePrefix prefixes the window name to form the store name.
	NamePrefix = "window-state-"
)

// Store persists a single geometry record.
type Store interface {
	// Restore returns the persisted record, or the default size when there
	// is none or it cannot be read.
	Restore() geometry.Record
	// Save overwrites the persisted record.
	Save(geometry.Record) error
}

// StoreName returns the namespace for a window kind.
func StoreName(windowName string) string {
	return NamePrefix + windowName
}

// ValidateWindowName rejects names that cannot be used as a file name.
func ValidateWindowName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("window name is required")
	}
	if strings.Contains(name, string(os.PathSeparator)) || strings.Contains(name, "/") || name != filepath.Base(name) {
		return fmt.Errorf("invalid window name %q", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid window name %q", name)
	}
	return nil
}

// FileStore keeps one window kind's record in a JSON file.
type FileStore struct {
	path   string
	def    geometry.Size
	logger *slog.Logger

	mu sync.Mutex
}

var _ Store = (*FileStore)(nil)

// Open returns the file store for windowName inside dir. The file itself is
// created lazily on the first Save.
func Open(dir, windowName string, def geometry.Size, logger *slog.Logger) (*FileStore, error) {
	if err := ValidateWindowName(windowName); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:   filepath.Join(dir, StoreName(windowName)+".json"),
		def:    def,
		logger: logger.With("store", StoreName(windowName)),
	}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Default returns the size restored when nothing valid is stored.
func (s *FileStore) Default() geometry.Size {
	return s.def
}

// Restore reads the persisted record.
func (s *FileStore) Restore() geometry.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no saved window state", "path", s.path)
		} else {
			s.logger.Warn("ignoring saved window state", "path", s.path, "error", err)
		}
		return geometry.FromSize(s.def)
	}
	return rec
}

// Lookup is Restore that also reports whether a valid record was stored.
func (s *FileStore) Lookup() (geometry.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		return geometry.FromSize(s.def), false
	}
	return rec, true
}

func (s *FileStore) read() (geometry.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return geometry.Record{}, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return geometry.Record{}, err
	}
	raw, ok := doc[Key]
	if !ok {
		return geometry.Record{}, fmt.Errorf("missing %q entry", Key)
	}
	return decodeRecord(raw)
}

// Save writes rec, keeping any other members already present in the file.
func (s *FileStore) Save(rec geometry.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := map[string]json.RawMessage{}
	if data, err := os.ReadFile(s.path); err == nil {
		if existing, err := decodeDocument(data); err == nil {
			doc = existing
		}
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode window state: %w", err)
	}
	doc[Key] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode window state: %w", err)
	}
	if err := writeFileAtomic(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write window state %q: %w", s.path, err)
	}
	s.logger.Debug("saved window state", "path", s.path, "geometry", rec.String())
	return nil
}

// Reset removes the persisted record. A missing file is not an error.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete window state %q: %w", s.path, err)
	}
	return nil
}

func decodeDocument(data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse window state: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("failed to parse window state: not an object")
	}
	return doc, nil
}

// rawRecord accepts any JSON number; fractional values are rounded.
type rawRecord struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

func decodeRecord(data json.RawMessage) (geometry.Record, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return geometry.Record{}, fmt.Errorf("%q entry is null", Key)
	}
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return geometry.Record{}, fmt.Errorf("invalid %q entry: %w", Key, err)
	}
	if raw.Width == nil || raw.Height == nil {
		return geometry.Record{}, fmt.Errorf("invalid %q entry: width and height are required", Key)
	}

	width, err := coord("width", *raw.Width, 1, math.MaxUint16)
	if err != nil {
		return geometry.Record{}, err
	}
	height, err := coord("height", *raw.Height, 1, math.MaxUint16)
	if err != nil {
		return geometry.Record{}, err
	}
	rec := geometry.Record{Width: width, Height: height}
	if raw.X != nil {
		x, err := coord("x", *raw.X, math.MinInt16, math.MaxInt16)
		if err != nil {
			return geometry.Record{}, err
		}
		rec.X = &x
	}
	if raw.Y != nil {
		y, err := coord("y", *raw.Y, math.MinInt16, math.MaxInt16)
		if err != nil {
			return geometry.Record{}, err
		}
		rec.Y = &y
	}
	return rec, nil
}

// coord rounds v and checks it against the X11 wire range [lo, hi].
func coord(field string, v float64, lo, hi int) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %q entry: %s is not finite", Key, field)
	}
	r := math.Round(v)
	if r < float64(lo) || r > float64(hi) {
		return 0, fmt.Errorf("invalid %q entry: %s %g out of range [%d, %d]", Key, field, v, lo, hi)
	}
	return int(r), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
