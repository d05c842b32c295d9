package platform

import "math"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether other lies entirely inside r. Shared edges count
// as inside. Rects with a negative size are never contained.
func (r Rect) Contains(other Rect) bool {
	if other.Width < 0 || other.Height < 0 {
		return false
	}
	return other.X >= r.X &&
		other.Y >= r.Y &&
		span(other.X, other.Width) <= span(r.X, r.Width) &&
		span(other.Y, other.Height) <= span(r.Y, r.Height)
}

// Intersection returns the overlapping area of r and other, or a zero Rect
// when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(span(r.X, r.Width), span(other.X, other.Width))
	y2 := min(span(r.Y, r.Height), span(other.Y, other.Height))
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// span returns pos+size, saturating instead of wrapping on overflow.
func span(pos, size int) int {
	end := pos + size
	switch {
	case size > 0 && end < pos:
		return math.MaxInt
	case size < 0 && end > pos:
		return math.MinInt
	}
	return end
}

// Display describes a physical display and its bounds in the global
// coordinate space.
type Display struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
	Bounds  Rect   `json:"bounds"`
}

// Topology is a live view of attached displays. Implementations must not
// cache: hot-plugged monitors show up on the next call.
type Topology interface {
	Displays() ([]Display, error)
	PrimaryDisplay() (Display, error)
}

// WindowOptions are the construction parameters for a top-level window.
// Only X, Y, Width and Height are geometry, and they describe the outer frame
// including decorations; everything else is passed to the host untouched.
type WindowOptions struct {
	Title      string
	Class      string
	X          *int
	Y          *int
	Width      int
	Height     int
	MinWidth   int
	MinHeight  int
	Resizable  bool
	Background uint32
}

// Window is a live top-level window owned by the host windowing system.
type Window interface {
	ID() WindowID
	// Bounds returns the window's current outer frame position and size, in
	// the same terms as WindowOptions.
	Bounds() (Rect, error)
	IsMinimized() bool
	IsMaximized() bool
	// OnMoveResize registers fn to run after every move or resize.
	OnMoveResize(fn func())
	// OnClose registers fn to run when the window is asked to close, before
	// it is destroyed.
	OnClose(fn func())
}

// WindowHost creates windows and answers topology queries.
type WindowHost interface {
	Topology
	NewWindow(opts WindowOptions) (Window, error)
}

// Presenter is implemented by windows the host can raise or move between
// virtual desktops.
type Presenter interface {
	Activate() error
	SetDesktop(desktop int) error
}
