package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/tategaki/internal/apppath"
	"github.com/1broseidon/tategaki/internal/config"
	"github.com/1broseidon/tategaki/internal/lifecycle"
	"github.com/1broseidon/tategaki/internal/platform"
)

// windowHost is the host surface the CLI drives.
type windowHost interface {
	platform.WindowHost
	EventLoop()
	Quit()
	Disconnect()
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("value is empty")
	}
	*l = append(*l, v)
	return nil
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var windows stringList
	fs.Var(&windows, "window", "Window kind to open (repeatable, default: main)")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/tategaki/config.yaml)")
	display := fs.String("display", "", "X display (default: config display or $DISPLAY)")
	desktop := fs.Int("desktop", -1, "Virtual desktop to open on (default: current)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tategaki open [--window NAME]... [--config PATH] [--display DISPLAY] [--desktop N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open windows at their remembered geometry and wait until all are closed.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return 2
	}
	if len(windows) == 0 {
		windows = stringList{config.DefaultWindow}
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	for _, name := range windows {
		if _, err := cfg.Window(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	stateDir, err := apppath.StateDir(cfg.StateDir)
	if err != nil {
		logger.Error("failed to prepare state dir", "error", err)
		return 1
	}

	host, err := connectHost(displayName(*display, cfg))
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer host.Disconnect()

	mgr, err := lifecycle.NewManager(lifecycle.Config{
		Host:     host,
		Stores:   fileStores(stateDir, logger.Logger),
		Fallback: cfg.Fallback,
		Logger:   logger.Logger,
	})
	if err != nil {
		logger.Error("failed to create window manager", "error", err)
		return 1
	}

	handles := make([]*lifecycle.Handle, 0, len(windows))
	for _, name := range windows {
		w, _ := cfg.Window(name)
		h, err := mgr.CreateWindow(name, w.Options())
		if err != nil {
			logger.Error("failed to open window", "window", name, "error", err)
			for _, opened := range handles {
				opened.Close()
			}
			return 1
		}
		present(h, *desktop, logger.Logger)
		handles = append(handles, h)
	}
	logger.Info("windows open", "count", len(handles), "state_dir", stateDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logger.Info("shutting down", "signal", sig.String())
		for _, h := range handles {
			h.Close()
		}
		host.Quit()
	}()

	host.EventLoop()

	status := 0
	for _, h := range handles {
		if err := h.SaveErr(); err != nil {
			status = 1
		}
	}
	return status
}

// present moves the window to desktop when one was requested and raises it.
// Failures are logged and otherwise ignored.
func present(h *lifecycle.Handle, desktop int, logger *slog.Logger) {
	p, ok := h.Window().(platform.Presenter)
	if !ok {
		return
	}
	if desktop >= 0 {
		if err := p.SetDesktop(desktop); err != nil {
			logger.Warn("failed to move window to desktop", "window", h.Name(), "desktop", desktop, "error", err)
		}
	}
	if err := p.Activate(); err != nil {
		logger.Debug("failed to activate window", "window", h.Name(), "error", err)
	}
}
