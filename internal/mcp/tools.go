package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tategaki/internal/lifecycle"
)

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.topology.Displays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to list displays: %w", err)
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, DisplayInfo{
			ID:      d.ID,
			Name:    d.Name,
			Primary: d.Primary,
			Bounds:  d.Bounds,
		})
	}
	s.logger.Debug("list_displays", "count", len(out.Displays))
	return nil, out, nil
}

func (s *Server) handleGetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, GetWindowStateOutput, error) {
	store, w, err := s.openStore(args.Window)
	if err != nil {
		return nil, GetWindowStateOutput{}, err
	}
	rec, stored := store.Lookup()
	return nil, GetWindowStateOutput{
		Window:   args.Window,
		Path:     store.Path(),
		Stored:   stored,
		Geometry: rec,
		Default:  w.DefaultSize(),
	}, nil
}

func (s *Server) handleCheckWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, CheckWindowStateOutput, error) {
	store, w, err := s.openStore(args.Window)
	if err != nil {
		return nil, CheckWindowStateOutput{}, err
	}

	in := lifecycle.Inspect(store, s.topology, w.DefaultSize(), s.app.Fallback, s.logger)
	s.logger.Debug("check_window_state", "window", args.Window, "reset", in.Reset)
	return nil, CheckWindowStateOutput{
		Window:   args.Window,
		Stored:   in.Stored,
		Restored: in.Restored,
		Result:   in.Result,
		Reset:    in.Reset,
		Target:   in.Target,
		Displays: in.Displays,
		Fallback: string(s.app.Fallback),
	}, nil
}

func (s *Server) handleResetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ResetWindowStateOutput, error) {
	store, _, err := s.openStore(args.Window)
	if err != nil {
		return nil, ResetWindowStateOutput{}, err
	}

	_, statErr := os.Stat(store.Path())
	existed := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return nil, ResetWindowStateOutput{}, fmt.Errorf("failed to stat window state: %w", statErr)
	}
	if err := store.Reset(); err != nil {
		return nil, ResetWindowStateOutput{}, err
	}

	s.logger.Info("window state reset", "window", args.Window, "path", store.Path(), "removed", existed)
	return nil, ResetWindowStateOutput{
		Window:  args.Window,
		Path:    store.Path(),
		Removed: existed,
	}, nil
}
