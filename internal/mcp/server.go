package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tategaki/internal/config"
	"github.com/1broseidon/tategaki/internal/platform"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

const (
	ServerName    = "tategaki"
	ServerVersion = "0.1.0"
)

// Config configures a Server.
type Config struct {
	App      *config.Config
	StateDir string
	Topology platform.Topology
	Logger   *slog.Logger
}

// Server exposes display topology and persisted window state over MCP.
type Server struct {
	mcpServer *mcpsdk.Server
	app       *config.Config
	stateDir  string
	topology  platform.Topology
	logger    *slog.Logger
}

// NewServer creates an MCP server. App, StateDir and Topology are required.
func NewServer(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.StateDir == "" {
		return nil, fmt.Errorf("state dir is required")
	}
	if cfg.Topology == nil {
		return nil, fmt.Errorf("display topology is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:      cfg.App,
		stateDir: cfg.StateDir,
		topology: cfg.Topology,
		logger:   logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the attached displays with their bounds in virtual-desktop coordinates. Exactly one display is marked primary.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_state",
		Description: "Read the persisted geometry for a configured window kind. When nothing valid is stored, the window's default size is returned with stored=false.",
	}, s.handleGetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "check_window_state",
		Description: "Report where a window kind would open on the current displays: its persisted geometry when fully visible on some display, otherwise the default size centered by the configured fallback policy.",
	}, s.handleCheckWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_window_state",
		Description: "Delete the persisted geometry for a window kind so the next launch opens at its default size.",
	}, s.handleResetWindowState)
}

// openStore returns the file store for a configured window kind.
func (s *Server) openStore(name string) (*windowstate.FileStore, config.Window, error) {
	w, err := s.app.Window(name)
	if err != nil {
		return nil, config.Window{}, err
	}
	store, err := windowstate.Open(s.stateDir, name, w.DefaultSize(), s.logger)
	if err != nil {
		return nil, config.Window{}, err
	}
	return store, w, nil
}
