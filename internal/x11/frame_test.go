package x11

import "testing"

func TestFrameExtentsOuter(t *testing.T) {
	// 4px border with a 24px title bar.
	ext := frameExtents{Left: 4, Right: 4, Top: 28, Bottom: 4}

	x, y, w, h := ext.outer(564, 268, 792, 568)
	if x != 560 || y != 240 || w != 800 || h != 600 {
		t.Fatalf("outer = %d,%d %dx%d, want 560,240 800x600", x, y, w, h)
	}

	x, y, w, h = frameExtents{}.outer(10, 20, 300, 200)
	if x != 10 || y != 20 || w != 300 || h != 200 {
		t.Fatalf("outer without extents = %d,%d %dx%d", x, y, w, h)
	}
}

func TestFrameExtentsInner(t *testing.T) {
	ext := frameExtents{Left: 4, Right: 4, Top: 28, Bottom: 4}

	w, h := ext.inner(800, 600)
	if w != 792 || h != 568 {
		t.Fatalf("inner = %dx%d, want 792x568", w, h)
	}
	if w, h := ext.inner(5, 10); w != 1 || h != 1 {
		t.Fatalf("inner of undersized frame = %dx%d, want 1x1", w, h)
	}
}

// A window restored at its saved frame origin must report that same origin
// once the window manager has decorated it.
func TestFrameExtentsRoundTripIsStable(t *testing.T) {
	ext := frameExtents{Left: 4, Right: 4, Top: 28, Bottom: 4}
	saved := [4]int{560, 240, 800, 600}

	for session := 0; session < 3; session++ {
		cw, ch := ext.inner(saved[2], saved[3])
		// NorthWest gravity: the frame's top-left lands on the requested point.
		cx, cy := saved[0]+ext.Left, saved[1]+ext.Top
		x, y, w, h := ext.outer(cx, cy, cw, ch)
		got := [4]int{x, y, w, h}
		if got != saved {
			t.Fatalf("session %d: captured %v, want %v", session, got, saved)
		}
		saved = got
	}
}
