package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/1broseidon/tategaki/internal/apppath"
	"github.com/1broseidon/tategaki/internal/config"
	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/lifecycle"
	"github.com/1broseidon/tategaki/internal/logging"
	"github.com/1broseidon/tategaki/internal/platform"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

func printStateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tategaki state show [--config PATH] [--json] NAME")
	fmt.Fprintln(w, "  tategaki state check [--config PATH] [--display DISPLAY] [--json] NAME")
	fmt.Fprintln(w, "  tategaki state reset [--config PATH] NAME")
	fmt.Fprintln(w, "  tategaki state path [--config PATH] NAME")
}

func runState(args []string) int {
	if len(args) == 0 {
		printStateUsage(os.Stderr)
		return 2
	}
	if isHelpArg(args[0]) {
		printStateUsage(os.Stdout)
		return 0
	}

	sub := args[0]
	switch sub {
	case "show", "check", "reset", "path":
	default:
		fmt.Fprintf(os.Stderr, "Unknown state subcommand: %s\n\n", sub)
		printStateUsage(os.Stderr)
		return 2
	}

	fset := flag.NewFlagSet("state "+sub, flag.ContinueOnError)
	fset.SetOutput(os.Stderr)
	configPath := fset.String("config", "", "Config file path (default: ~/.config/tategaki/config.yaml)")
	asJSON := fset.Bool("json", false, "Output JSON")
	display := fset.String("display", "", "X display for check (default: config display or $DISPLAY)")
	fset.Usage = func() { printStateUsage(os.Stderr) }
	if err := fset.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fset.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "state %s requires exactly one window NAME\n", sub)
		return 2
	}
	name := fset.Arg(0)

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	store, w, err := openStateStore(res.Config, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch sub {
	case "show":
		err = stateShow(os.Stdout, name, store, *asJSON)
	case "path":
		_, err = fmt.Fprintln(os.Stdout, store.Path())
	case "reset":
		err = stateReset(os.Stdout, name, store)
	case "check":
		var host windowHost
		host, err = connectHost(displayName(*display, res.Config))
		if err == nil {
			defer host.Disconnect()
			err = stateCheck(os.Stdout, name, store, host, w.DefaultSize(), res.Config.Fallback, *asJSON)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func openStateStore(cfg *config.Config, name string) (*windowstate.FileStore, config.Window, error) {
	w, err := cfg.Window(name)
	if err != nil {
		return nil, config.Window{}, err
	}
	dir, err := apppath.StateDir(cfg.StateDir)
	if err != nil {
		return nil, config.Window{}, err
	}
	store, err := windowstate.Open(dir, name, w.DefaultSize(), logging.Discard())
	if err != nil {
		return nil, config.Window{}, err
	}
	return store, w, nil
}

type stateShowOutput struct {
	Window   string          `json:"window"`
	Path     string          `json:"path"`
	Stored   bool            `json:"stored"`
	Geometry geometry.Record `json:"geometry"`
}

func stateShow(w io.Writer, name string, store *windowstate.FileStore, asJSON bool) error {
	rec, stored := store.Lookup()
	if asJSON {
		return writeJSON(w, stateShowOutput{Window: name, Path: store.Path(), Stored: stored, Geometry: rec})
	}
	origin := "stored"
	if !stored {
		origin = "default"
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s)\n", name, rec, origin)
	return err
}

func stateReset(w io.Writer, name string, store *windowstate.FileStore) error {
	_, statErr := os.Stat(store.Path())
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat window state: %w", statErr)
	}
	if err := store.Reset(); err != nil {
		return err
	}
	if statErr != nil {
		_, err := fmt.Fprintf(w, "%s: nothing stored\n", name)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: removed %s\n", name, store.Path())
	return err
}

func stateCheck(w io.Writer, name string, store lifecycle.Lookup, topo platform.Topology, def geometry.Size, fallback geometry.Fallback, asJSON bool) error {
	in := lifecycle.Inspect(store, topo, def, fallback, logging.Discard())
	if asJSON {
		return writeJSON(w, struct {
			Window string `json:"window"`
			lifecycle.Inspection
		}{name, in})
	}

	if !in.Reset {
		_, err := fmt.Fprintf(w, "%s: ok, opens at %s\n", name, in.Result)
		return err
	}
	what := "stored geometry " + in.Restored.String()
	if !in.Stored {
		what = "no stored geometry"
	}
	_, err := fmt.Fprintf(w, "%s: %s is not visible on %d display(s); opens at %s (%s fallback)\n",
		name, what, in.Displays, in.Result, fallback)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
