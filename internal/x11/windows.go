package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowSpec describes a top-level window to create. X, Y, Width and Height
// are the outer frame geometry, decorations included.
type WindowSpec struct {
	Title      string
	Class      string
	X          int
	Y          int
	Positioned bool
	Width      int
	Height     int
	MinWidth   int
	MinHeight  int
	Fixed      bool
	Background uint32
}

// Window is a top-level window created by this process.
type Window struct {
	conn *Connection
	win  *xwindow.Window

	spec WindowSpec

	mu         sync.Mutex
	fitted     bool
	moveResize []func()
	closing    []func()
	destroyed  bool
	onDestroy  func()
}

// CreateWindow creates and maps a top-level window. onDestroy runs after the
// window has been destroyed in response to a close request.
func (c *Connection) CreateWindow(spec WindowSpec, onDestroy func()) (*Window, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", spec.Width, spec.Height)
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, spec.X, spec.Y, spec.Width, spec.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		spec.Background, xproto.EventMaskStructureNotify|xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{conn: c, win: win, spec: spec, onDestroy: onDestroy}

	if spec.Title != "" {
		_ = ewmh.WmNameSet(c.XUtil, win.Id, spec.Title)
		_ = icccm.WmNameSet(c.XUtil, win.Id, spec.Title)
	}
	if spec.Class != "" {
		_ = icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{
			Instance: spec.Class,
			Class:    spec.Class,
		})
	}
	if err := icccm.WmNormalHintsSet(c.XUtil, win.Id, normalHints(spec)); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to set size hints: %w", err)
	}

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		w.dispatch(w.snapshotMoveResize())
	}).Connect(c.XUtil, win.Id)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if name, err := xprop.AtomName(xu, ev.Atom); err == nil && name == "_NET_FRAME_EXTENTS" {
			w.fitFrame()
		}
	}).Connect(c.XUtil, win.Id)

	// WM_DELETE_WINDOW: run close handlers while the window still exists so
	// they can read its final geometry, then tear it down.
	win.WMGracefulClose(func(xw *xwindow.Window) {
		w.dispatch(w.snapshotClosing())
		w.destroy()
	})

	// The client starts at the full outer size; it shrinks to fit once the
	// window manager reports its decorations.
	_ = c.requestFrameExtents(win.Id)
	win.Map()
	if spec.Positioned {
		// Most window managers ignore the create-time position of a
		// reparented window unless it is requested again after mapping.
		win.Move(spec.X, spec.Y)
	}

	return w, nil
}

func normalHints(spec WindowSpec) *icccm.NormalHints {
	hints := &icccm.NormalHints{
		Flags:  icccm.SizeHintUSSize,
		Width:  uint(spec.Width),
		Height: uint(spec.Height),
	}
	if spec.Positioned {
		hints.Flags |= icccm.SizeHintUSPosition
		hints.X = spec.X
		hints.Y = spec.Y
	}
	if spec.MinWidth > 0 || spec.MinHeight > 0 {
		hints.Flags |= icccm.SizeHintPMinSize
		hints.MinWidth = uint(spec.MinWidth)
		hints.MinHeight = uint(spec.MinHeight)
	}
	if spec.Fixed {
		hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth = uint(spec.Width)
		hints.MinHeight = uint(spec.Height)
		hints.MaxWidth = uint(spec.Width)
		hints.MaxHeight = uint(spec.Height)
	}
	return hints
}

// fitFrame shrinks the client so the decorated frame matches the requested
// outer size. It runs once, on the first non-empty _NET_FRAME_EXTENTS.
func (w *Window) fitFrame() {
	ext := w.conn.frameExtentsOf(w.win.Id)
	if ext.zero() {
		return
	}
	w.mu.Lock()
	if w.fitted || w.destroyed {
		w.mu.Unlock()
		return
	}
	w.fitted = true
	w.mu.Unlock()

	width, height := ext.inner(w.spec.Width, w.spec.Height)
	if w.spec.Fixed {
		fixed := w.spec
		fixed.Width, fixed.Height = width, height
		_ = icccm.WmNormalHintsSet(w.conn.XUtil, w.win.Id, normalHints(fixed))
	}
	w.win.Resize(width, height)
}

// ID returns the X11 window id.
func (w *Window) ID() xproto.Window {
	return w.win.Id
}

// OnMoveResize registers fn for ConfigureNotify events.
func (w *Window) OnMoveResize(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moveResize = append(w.moveResize, fn)
}

// OnClose registers fn for WM_DELETE_WINDOW requests.
func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closing = append(w.closing, fn)
}

// Geometry returns the outer frame in root window coordinates: the client
// area grown by the window manager's frame extents.
func (w *Window) Geometry() (x, y, width, height int, err error) {
	conn := w.conn.XUtil.Conn()
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(w.win.Id)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get window geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(conn, w.win.Id, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	x, y, width, height = w.conn.frameExtentsOf(w.win.Id).outer(
		int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height))
	return x, y, width, height, nil
}

// IsMinimized reports whether the window is iconified.
func (w *Window) IsMinimized() bool {
	if states, err := ewmh.WmStateGet(w.conn.XUtil, w.win.Id); err == nil && hasState(states, "_NET_WM_STATE_HIDDEN") {
		return true
	}
	if st, err := icccm.WmStateGet(w.conn.XUtil, w.win.Id); err == nil {
		return st.State == icccm.StateIconic
	}
	return false
}

// IsMaximized reports whether the window is maximized in both directions or
// fullscreen.
func (w *Window) IsMaximized() bool {
	states, err := ewmh.WmStateGet(w.conn.XUtil, w.win.Id)
	if err != nil {
		return false
	}
	return isMaximizedState(states)
}

func isMaximizedState(states []string) bool {
	if hasState(states, "_NET_WM_STATE_FULLSCREEN") {
		return true
	}
	return hasState(states, "_NET_WM_STATE_MAXIMIZED_VERT") &&
		hasState(states, "_NET_WM_STATE_MAXIMIZED_HORZ")
}

func hasState(states []string, want string) bool {
	for _, state := range states {
		if state == want {
			return true
		}
	}
	return false
}

func (w *Window) snapshotMoveResize() []func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	return append([]func(){}, w.moveResize...)
}

func (w *Window) snapshotClosing() []func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	return append([]func(){}, w.closing...)
}

func (w *Window) dispatch(handlers []func()) {
	for _, fn := range handlers {
		fn()
	}
}

func (w *Window) destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	onDestroy := w.onDestroy
	w.mu.Unlock()

	xevent.Detach(w.conn.XUtil, w.win.Id)
	w.win.Destroy()
	if onDestroy != nil {
		onDestroy()
	}
}
