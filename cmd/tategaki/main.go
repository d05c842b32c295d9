package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/1broseidon/tategaki/internal/config"
	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/lifecycle"
	"github.com/1broseidon/tategaki/internal/logging"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "state":
		os.Exit(runState(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tategaki <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  open                Open windows at their remembered geometry")
	fmt.Fprintln(w, "  displays            List attached displays")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  state show          Show persisted geometry for a window")
	fmt.Fprintln(w, "  state check         Check persisted geometry against the displays")
	fmt.Fprintln(w, "  state reset         Forget persisted geometry for a window")
	fmt.Fprintln(w, "  state path          Print the state file location")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tategaki <command> --help' for command-specific options.")
}

func isHelpArg(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxFiles:   cfg.Logging.MaxFiles,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
}

// fileStores opens a FileStore per window kind inside dir.
func fileStores(dir string, logger *slog.Logger) lifecycle.StoreOpener {
	return func(name string, def geometry.Size) (windowstate.Store, error) {
		return windowstate.Open(dir, name, def, logger)
	}
}

func displayName(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Display
}
