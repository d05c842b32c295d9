package lifecycle

import (
	"log/slog"

	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/platform"
)

// Lookup is the read side of a store that can tell a stored record from
// the default.
type Lookup interface {
	Lookup() (geometry.Record, bool)
}

// Inspection describes what opening a window would do with its stored
// record on the current displays.
type Inspection struct {
	Stored   bool            `json:"stored"`
	Restored geometry.Record `json:"restored"`
	Result   geometry.Record `json:"result"`
	Reset    bool            `json:"reset"`
	Target   platform.Rect   `json:"target"`
	Displays int             `json:"displays"`
}

// Inspect runs the restore and reconcile steps of CreateWindow without
// creating a window.
func Inspect(store Lookup, topo platform.Topology, def geometry.Size, fallback geometry.Fallback, logger *slog.Logger) Inspection {
	if logger == nil {
		logger = slog.Default()
	}
	restored, stored := store.Lookup()
	displays, primary := queryTopology(topo, logger)
	res := geometry.Reconciler{Default: def, Fallback: fallback}.Reconcile(restored, displays, primary)
	return Inspection{
		Stored:   stored,
		Restored: restored,
		Result:   res.Record,
		Reset:    res.Reset,
		Target:   res.Target,
		Displays: len(displays),
	}
}
