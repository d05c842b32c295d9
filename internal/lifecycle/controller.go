// Package lifecycle opens windows at their remembered geometry and writes
// the geometry back when they close.
//
// Each window moves through a fixed sequence of phases. Restoring and
// reconciling happen before the window exists; once constructed, move and
// resize notifications update the in-memory record until the close request
// persists it exactly once.
package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/platform"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

// Phase is a window's position in its lifecycle. A handle that fails to
// construct its window ends in PhaseTerminal; one that closes ends in
// PhasePersisted whether or not the save succeeded.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseRestoring
	PhaseReconciling
	PhaseConstructed
	PhaseNormal
	PhaseMovedOrResized
	PhaseClosing
	PhasePersisted
	PhaseTerminal
)

var phaseNames = [...]string{
	"uninitialized",
	"restoring",
	"reconciling",
	"constructed",
	"normal",
	"moved-or-resized",
	"closing",
	"persisted",
	"terminal",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// StoreOpener returns the store for a window kind.
type StoreOpener func(windowName string, def geometry.Size) (windowstate.Store, error)

// Config configures a Manager.
type Config struct {
	Host     platform.WindowHost
	Stores   StoreOpener
	Fallback geometry.Fallback
	Logger   *slog.Logger
}

// Manager creates windows with persisted geometry.
type Manager struct {
	host     platform.WindowHost
	stores   StoreOpener
	fallback geometry.Fallback
	logger   *slog.Logger
}

// NewManager creates a manager. Host and Stores are required.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Host == nil {
		return nil, fmt.Errorf("window host is required")
	}
	if cfg.Stores == nil {
		return nil, fmt.Errorf("store opener is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := cfg.Fallback
	if fallback == "" {
		fallback = geometry.FallbackPrimary
	}
	return &Manager{
		host:     cfg.Host,
		stores:   cfg.Stores,
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Handle owns one window and its geometry state.
type Handle struct {
	name   string
	window platform.Window
	store  windowstate.Store
	logger *slog.Logger

	mu      sync.Mutex
	state   geometry.Record
	phase   Phase
	reset   bool
	saveErr error
}

// CreateWindow restores the geometry saved for windowName, repairs it
// against the attached displays, and opens the window there. opts.Width and
// opts.Height are the default size; all non-geometry options reach the host
// unchanged. Storage and topology problems are absorbed; errors come only
// from invalid arguments and window construction.
func (m *Manager) CreateWindow(windowName string, opts platform.WindowOptions) (*Handle, error) {
	def := geometry.Size{Width: opts.Width, Height: opts.Height}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("window %q: default size must be positive, got %dx%d", windowName, def.Width, def.Height)
	}

	store, err := m.stores(windowName, def)
	if err != nil {
		return nil, fmt.Errorf("window %q: %w", windowName, err)
	}

	logger := m.logger.With("window", windowName)
	h := &Handle{
		name:   windowName,
		store:  store,
		logger: logger,
		phase:  PhaseUninitialized,
	}

	h.setPhase(PhaseRestoring)
	restored := store.Restore()

	h.setPhase(PhaseReconciling)
	displays, primary := queryTopology(m.host, logger)
	res := geometry.Reconciler{Default: def, Fallback: m.fallback}.Reconcile(restored, displays, primary)
	if res.Reset {
		logger.Info("window geometry reset to defaults",
			"restored", restored.String(),
			"geometry", res.Record.String(),
			"displays", len(displays))
	}

	h.mu.Lock()
	h.state = res.Record
	h.reset = res.Reset
	h.mu.Unlock()

	win, err := m.host.NewWindow(mergeOptions(opts, res.Record))
	if err != nil {
		h.setPhase(PhaseTerminal)
		return nil, fmt.Errorf("window %q: %w", windowName, err)
	}
	h.window = win
	h.setPhase(PhaseConstructed)

	win.OnMoveResize(h.capture)
	win.OnClose(h.persist)

	h.setPhase(PhaseNormal)
	logger.Debug("window created", "geometry", res.Record.String())
	return h, nil
}

// queryTopology reads display bounds. Enumeration failures degrade to no
// displays and a zero primary, which forces the reset path.
func queryTopology(topo platform.Topology, logger *slog.Logger) ([]platform.Rect, platform.Rect) {
	var rects []platform.Rect
	displays, err := topo.Displays()
	if err != nil {
		logger.Warn("failed to enumerate displays", "error", err)
	}
	for _, d := range displays {
		rects = append(rects, d.Bounds)
	}

	primary, err := topo.PrimaryDisplay()
	if err != nil {
		logger.Warn("failed to query primary display", "error", err)
		return rects, platform.Rect{}
	}
	return rects, primary.Bounds
}

// mergeOptions lays geometry over opts.
func mergeOptions(opts platform.WindowOptions, rec geometry.Record) platform.WindowOptions {
	out := opts
	out.Width = rec.Width
	out.Height = rec.Height
	out.X = nil
	out.Y = nil
	if rec.X != nil {
		x := *rec.X
		out.X = &x
	}
	if rec.Y != nil {
		y := *rec.Y
		out.Y = &y
	}
	return out
}

// capture merges the window's live geometry into the state unless the
// window is minimized or maximized.
func (h *Handle) capture() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captureLocked()
}

func (h *Handle) captureLocked() {
	if h.phase >= PhaseClosing {
		return
	}
	if h.window.IsMinimized() || h.window.IsMaximized() {
		return
	}
	bounds, err := h.window.Bounds()
	if err != nil {
		h.logger.Debug("failed to read window bounds", "error", err)
		return
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	h.state = geometry.FromRect(bounds)
	h.phase = PhaseMovedOrResized
}

// persist takes a final capture and saves the state. It runs once; later
// close notifications are ignored.
func (h *Handle) persist() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.phase >= PhaseClosing {
		return
	}
	h.captureLocked()
	h.phase = PhaseClosing

	if err := h.store.Save(h.state); err != nil {
		// The window is going away; the next launch falls back to defaults.
		h.saveErr = err
		h.logger.Error("failed to save window geometry", "error", err)
	} else {
		h.logger.Debug("window geometry saved", "geometry", h.state.String())
	}
	h.phase = PhasePersisted
}

// Close persists the geometry as a close request would, for shutdowns that
// bypass the window manager. Later close notifications are ignored.
func (h *Handle) Close() {
	h.persist()
}

func (h *Handle) setPhase(p Phase) {
	h.mu.Lock()
	h.phase = p
	h.mu.Unlock()
}

// Name returns the window kind.
func (h *Handle) Name() string { return h.name }

// Window returns the underlying host window.
func (h *Handle) Window() platform.Window { return h.window }

// Geometry returns a copy of the current in-memory geometry.
func (h *Handle) Geometry() geometry.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// Phase returns the current lifecycle phase.
func (h *Handle) Phase() Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phase
}

// WasReset reports whether restored geometry was replaced at construction.
func (h *Handle) WasReset() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reset
}

// SaveErr returns the error from the close-time save, if any.
func (h *Handle) SaveErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.saveErr
}
