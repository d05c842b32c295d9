package geometry

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tategaki/internal/platform"
)

// Fallback selects where a reset window is centered.
type Fallback string

const (
	FallbackPrimary Fallback = "primary" // Center on the primary display.
	FallbackNearest Fallback = "nearest" // Center on the display closest to the old position.
)

// ParseFallback parses a fallback policy name. Empty means primary.
func ParseFallback(s string) (Fallback, error) {
	switch Fallback(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackPrimary:
		return FallbackPrimary, nil
	case FallbackNearest:
		return FallbackNearest, nil
	default:
		return "", fmt.Errorf("unknown fallback %q (expected %q or %q)", s, FallbackPrimary, FallbackNearest)
	}
}

// WithinBounds reports whether candidate lies entirely inside display.
// Edges may touch; one unit past any edge fails. Unpositioned records are
// never within bounds.
func WithinBounds(candidate Record, display platform.Rect) bool {
	rect, ok := candidate.Rect()
	if !ok {
		return false
	}
	return display.Contains(rect)
}

// VisibleOnSomeDisplay reports whether at least one display fully contains
// candidate.
func VisibleOnSomeDisplay(candidate Record, displays []platform.Rect) bool {
	for _, d := range displays {
		if WithinBounds(candidate, d) {
			return true
		}
	}
	return false
}

// ResetToDefaults centers def on the primary display. Offsets are floored,
// so a default larger than the display by an odd amount lands at -1 rather
// than 0 and the overhang is split with the extra pixel on the left/top.
func ResetToDefaults(def Size, primary platform.Rect) Record {
	return At(
		centerOffset(primary.Width, def.Width),
		centerOffset(primary.Height, def.Height),
		def.Width,
		def.Height,
	)
}

// CenterOn centers def on display, including the display's origin offset.
func CenterOn(def Size, display platform.Rect) Record {
	return At(
		display.X+centerOffset(display.Width, def.Width),
		display.Y+centerOffset(display.Height, def.Height),
		def.Width,
		def.Height,
	)
}

// centerOffset is floor((avail-size)/2).
func centerOffset(avail, size int) int {
	d := avail - size
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// Reconciler validates restored geometry for one window kind.
type Reconciler struct {
	Default  Size
	Fallback Fallback
}

// Result is the outcome of a reconciliation.
type Result struct {
	Record Record
	// Reset is true when the candidate was replaced.
	Reset bool
	// Target is the display containing the candidate, or the display the
	// replacement was centered on.
	Target platform.Rect
}

// Reconcile returns candidate unchanged if some display contains it, or a
// default-sized record centered according to the fallback policy.
func (r Reconciler) Reconcile(candidate Record, displays []platform.Rect, primary platform.Rect) Result {
	for _, d := range displays {
		if WithinBounds(candidate, d) {
			return Result{Record: candidate.Clone(), Target: d}
		}
	}

	if r.Fallback == FallbackNearest {
		if target, ok := nearestDisplay(candidate, displays); ok {
			return Result{Record: CenterOn(r.Default, target), Reset: true, Target: target}
		}
	}

	return Result{Record: ResetToDefaults(r.Default, primary), Reset: true, Target: primary}
}

// EnsureVisible is Reconcile without the diagnostics.
func (r Reconciler) EnsureVisible(candidate Record, displays []platform.Rect, primary platform.Rect) Record {
	return r.Reconcile(candidate, displays, primary).Record
}

// nearestDisplay picks the display with the largest overlap with candidate,
// or, when nothing overlaps, the display whose center is closest to the
// candidate's center.
func nearestDisplay(candidate Record, displays []platform.Rect) (platform.Rect, bool) {
	rect, ok := candidate.Rect()
	if !ok || len(displays) == 0 {
		return platform.Rect{}, false
	}

	bestIdx := -1
	bestArea := 0
	for i, d := range displays {
		isect := d.Intersection(rect)
		if area := isect.Width * isect.Height; area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return displays[bestIdx], true
	}

	cx := rect.X + rect.Width/2
	cy := rect.Y + rect.Height/2
	bestDist := -1
	for i, d := range displays {
		dx := d.X + d.Width/2 - cx
		dy := d.Y + d.Height/2 - cy
		if dist := dx*dx + dy*dy; bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	return displays[bestIdx], true
}
