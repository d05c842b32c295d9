//go:build linux

package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/tategaki/internal/x11"
)

// LinuxBackend implements WindowHost on top of an X11 connection.
type LinuxBackend struct {
	conn *x11.Connection

	mu          sync.Mutex
	open        int
	quitOnEmpty bool
}

var _ WindowHost = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn, quitOnEmpty: true}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. An empty display
// uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop runs the X11 event loop until every window created through this
// backend has been closed.
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop without waiting for the remaining windows.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// OpenWindows returns the number of windows not yet destroyed.
func (b *LinuxBackend) OpenWindows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Displays returns all active displays ordered by id.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// PrimaryDisplay returns the display RandR reports as primary.
func (b *LinuxBackend) PrimaryDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	primary, err := conn.GetPrimaryMonitor()
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(*primary), nil
}

// NewWindow creates and maps a top-level X11 window.
func (b *LinuxBackend) NewWindow(opts WindowOptions) (Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	spec := x11.WindowSpec{
		Title:      opts.Title,
		Class:      opts.Class,
		Width:      opts.Width,
		Height:     opts.Height,
		MinWidth:   opts.MinWidth,
		MinHeight:  opts.MinHeight,
		Fixed:      !opts.Resizable,
		Background: opts.Background,
	}
	if opts.X != nil && opts.Y != nil {
		spec.X = *opts.X
		spec.Y = *opts.Y
		spec.Positioned = true
	}

	win, err := conn.CreateWindow(spec, b.windowDestroyed)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.open++
	b.mu.Unlock()

	return &linuxWindow{win: win}, nil
}

func (b *LinuxBackend) windowDestroyed() {
	b.mu.Lock()
	b.open--
	quit := b.open <= 0 && b.quitOnEmpty
	b.mu.Unlock()

	if quit {
		b.conn.Quit()
	}
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Primary: m.Primary,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}

var _ Presenter = (*linuxWindow)(nil)

type linuxWindow struct {
	win *x11.Window
}

func (w *linuxWindow) ID() WindowID {
	return WindowID(w.win.ID())
}

func (w *linuxWindow) Bounds() (Rect, error) {
	x, y, width, height, err := w.win.Geometry()
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

func (w *linuxWindow) IsMinimized() bool { return w.win.IsMinimized() }

func (w *linuxWindow) IsMaximized() bool { return w.win.IsMaximized() }

func (w *linuxWindow) OnMoveResize(fn func()) { w.win.OnMoveResize(fn) }

func (w *linuxWindow) OnClose(fn func()) { w.win.OnClose(fn) }

func (w *linuxWindow) Activate() error { return w.win.Activate() }

func (w *linuxWindow) SetDesktop(desktop int) error { return w.win.SetDesktop(desktop) }
