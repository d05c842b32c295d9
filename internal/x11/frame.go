package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// frameExtents are the decoration sizes a reparenting window manager adds
// around the client area (_NET_FRAME_EXTENTS).
type frameExtents struct {
	Left, Right, Top, Bottom int
}

func (e frameExtents) zero() bool {
	return e == frameExtents{}
}

// outer converts a client rectangle in root coordinates to the frame
// rectangle that encloses it.
func (e frameExtents) outer(x, y, width, height int) (int, int, int, int) {
	return x - e.Left, y - e.Top, width + e.Left + e.Right, height + e.Top + e.Bottom
}

// inner returns the client size that fits in a frame of the given size,
// never smaller than 1x1.
func (e frameExtents) inner(width, height int) (int, int) {
	return max(width-e.Left-e.Right, 1), max(height-e.Top-e.Bottom, 1)
}

// frameExtentsOf returns the decoration sizes of a window, or zeros when the
// window manager does not publish them.
func (c *Connection) frameExtentsOf(windowID xproto.Window) frameExtents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil || extents == nil {
		return frameExtents{}
	}
	return frameExtents{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}
}

// requestFrameExtents asks the window manager to publish _NET_FRAME_EXTENTS
// for a window that is not mapped yet.
func (c *Connection) requestFrameExtents(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "_NET_REQUEST_FRAME_EXTENTS", 0, 0, 0, 0, 0)
}
