package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/tategaki/internal/platform"
)

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output JSON (default when stdout is not a terminal)")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/tategaki/config.yaml)")
	display := fs.String("display", "", "X display (default: config display or $DISPLAY)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tategaki displays [--json] [--display DISPLAY]")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	host, err := connectHost(displayName(*display, res.Config))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer host.Disconnect()

	displays, err := host.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	jsonOut := *asJSON || !term.IsTerminal(int(os.Stdout.Fd()))
	if err := writeDisplays(os.Stdout, displays, jsonOut); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func writeDisplays(w io.Writer, displays []platform.Display, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if displays == nil {
			displays = []platform.Display{}
		}
		return enc.Encode(displays)
	}

	if len(displays) == 0 {
		_, err := fmt.Fprintln(w, "No displays found.")
		return err
	}
	fmt.Fprintf(w, "%-3s %-12s %-9s %-11s %s\n", "ID", "NAME", "PRIMARY", "ORIGIN", "SIZE")
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = "yes"
		}
		origin := fmt.Sprintf("%d,%d", d.Bounds.X, d.Bounds.Y)
		size := fmt.Sprintf("%dx%d", d.Bounds.Width, d.Bounds.Height)
		if _, err := fmt.Fprintf(w, "%-3d %-12s %-9s %-11s %s\n", d.ID, d.Name, primary, origin, size); err != nil {
			return err
		}
	}
	return nil
}
