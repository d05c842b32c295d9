// Package geometry validates remembered window placement against the
// displays that are attached now and computes a safe replacement when the
// remembered placement no longer fits on any of them.
package geometry

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tategaki/internal/platform"
)

// Record is a window's last observed or default placement. X and Y are nil
// until the window has been positioned.
type Record struct {
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// Size is the fallback size of a window kind.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromSize returns an unpositioned record of the given size.
func FromSize(s Size) Record {
	return Record{Width: s.Width, Height: s.Height}
}

// FromRect returns a positioned record matching r.
func FromRect(r platform.Rect) Record {
	x, y := r.X, r.Y
	return Record{X: &x, Y: &y, Width: r.Width, Height: r.Height}
}

// At returns a positioned record.
func At(x, y, width, height int) Record {
	return Record{X: &x, Y: &y, Width: width, Height: height}
}

// Positioned reports whether both coordinates are set.
func (r Record) Positioned() bool {
	return r.X != nil && r.Y != nil
}

// Rect returns the record as a rectangle. ok is false for unpositioned
// records.
func (r Record) Rect() (rect platform.Rect, ok bool) {
	if !r.Positioned() {
		return platform.Rect{}, false
	}
	return platform.Rect{X: *r.X, Y: *r.Y, Width: r.Width, Height: r.Height}, true
}

// Clone returns a copy that shares no pointers with r.
func (r Record) Clone() Record {
	out := Record{Width: r.Width, Height: r.Height}
	if r.X != nil {
		x := *r.X
		out.X = &x
	}
	if r.Y != nil {
		y := *r.Y
		out.Y = &y
	}
	return out
}

// Equal compares two records by value.
func (r Record) Equal(other Record) bool {
	if r.Width != other.Width || r.Height != other.Height {
		return false
	}
	return intPtrEqual(r.X, other.X) && intPtrEqual(r.Y, other.Y)
}

func (r Record) String() string {
	var b strings.Builder
	if r.X != nil {
		fmt.Fprintf(&b, "x=%d ", *r.X)
	}
	if r.Y != nil {
		fmt.Fprintf(&b, "y=%d ", *r.Y)
	}
	fmt.Fprintf(&b, "%dx%d", r.Width, r.Height)
	return b.String()
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
