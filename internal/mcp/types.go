package mcp

import (
	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/platform"
)

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one attached display.
type DisplayInfo struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Primary bool          `json:"primary"`
	Bounds  platform.Rect `json:"bounds"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// WindowInput names a window kind.
type WindowInput struct {
	Window string `json:"window" jsonschema:"required,Window kind from the windows config (e.g. main)"`
}

// GetWindowStateOutput is the output for the get_window_state tool.
type GetWindowStateOutput struct {
	Window   string          `json:"window"`
	Path     string          `json:"path"`
	Stored   bool            `json:"stored"`
	Geometry geometry.Record `json:"geometry"`
	Default  geometry.Size   `json:"default"`
}

// CheckWindowStateOutput is the output for the check_window_state tool.
type CheckWindowStateOutput struct {
	Window   string          `json:"window"`
	Stored   bool            `json:"stored"`
	Restored geometry.Record `json:"restored"`
	Result   geometry.Record `json:"result"`
	Reset    bool            `json:"reset"`
	Target   platform.Rect   `json:"target"`
	Displays int             `json:"displays"`
	Fallback string          `json:"fallback"`
}

// ResetWindowStateOutput is the output for the reset_window_state tool.
type ResetWindowStateOutput struct {
	Window  string `json:"window"`
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}
