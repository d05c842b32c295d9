package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/tategaki/internal/geometry"
	"github.com/1broseidon/tategaki/internal/platform"
	"github.com/1broseidon/tategaki/internal/windowstate"
)

const (
	DefaultWindow = "main"

	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxFiles   = 3
	DefaultLogMaxAgeDays = 28
)

// Window configures one window kind. Width and Height are the size used
// when no valid remembered geometry exists.
type Window struct {
	Title     string `yaml:"title"`
	Class     string `yaml:"class"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	Resizable bool   `yaml:"resizable"`
}

// DefaultSize returns the window's fallback size.
func (w Window) DefaultSize() geometry.Size {
	return geometry.Size{Width: w.Width, Height: w.Height}
}

// Options returns host construction options for the window.
func (w Window) Options() platform.WindowOptions {
	return platform.WindowOptions{
		Title:      w.Title,
		Class:      w.Class,
		Width:      w.Width,
		Height:     w.Height,
		MinWidth:   w.MinWidth,
		MinHeight:  w.MinHeight,
		Resizable:  w.Resizable,
		Background: 0xffffff,
	}
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	// File is the log file path. Empty logs to stderr only.
	File string `yaml:"file,omitempty"`
	// Format is "text" or "json".
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxFiles   int    `yaml:"max_files"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config is the effective application configuration.
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Display  string            `yaml:"display,omitempty"`
	StateDir string            `yaml:"state_dir,omitempty"`
	Fallback geometry.Fallback `yaml:"fallback"`
	Logging  LoggingConfig     `yaml:"logging"`
	Windows  map[string]Window `yaml:"windows"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Fallback: geometry.FallbackPrimary,
		Logging: LoggingConfig{
			Format:     "text",
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxFiles:   DefaultLogMaxFiles,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
		Windows: BuiltinWindows(),
	}
}

// BuiltinWindows returns the window kinds the application ships with.
func BuiltinWindows() map[string]Window {
	return map[string]Window{
		DefaultWindow: {
			Title:     "Tategaki",
			Class:     "tategaki",
			Width:     800,
			Height:    600,
			MinWidth:  320,
			MinHeight: 240,
			Resizable: true,
		},
		"preferences": {
			Title:     "Tategaki Preferences",
			Class:     "tategaki",
			Width:     480,
			Height:    360,
			Resizable: false,
		},
	}
}

// Window returns the configuration for a window kind.
func (c *Config) Window(name string) (Window, error) {
	w, ok := c.Windows[name]
	if !ok {
		return Window{}, fmt.Errorf("unknown window %q (available: %s)", name, strings.Join(c.WindowNames(), ", "))
	}
	return w, nil
}

// WindowNames returns the configured window kinds in sorted order.
func (c *Config) WindowNames() []string {
	names := make([]string, 0, len(c.Windows))
	for name := range c.Windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if _, err := geometry.ParseFallback(string(c.Fallback)); err != nil {
		return &ValidationError{Path: "fallback", Err: err}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("logging.format must be one of: text, json")}
	}
	if c.Logging.MaxSizeMB < 1 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 1")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if c.Logging.MaxAgeDays < 0 {
		return &ValidationError{Path: "logging.max_age_days", Err: fmt.Errorf("max_age_days must be >= 0")}
	}

	if len(c.Windows) == 0 {
		return &ValidationError{Path: "windows", Err: fmt.Errorf("windows must not be empty")}
	}
	for _, name := range c.WindowNames() {
		w := c.Windows[name]
		path := "windows." + name
		if err := windowstate.ValidateWindowName(name); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
		if w.Width <= 0 || w.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be > 0")}
		}
		if w.MinWidth < 0 || w.MinHeight < 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("min_width and min_height must be >= 0")}
		}
		if w.MinWidth > w.Width || w.MinHeight > w.Height {
			return &ValidationError{Path: path, Err: fmt.Errorf("minimum size %dx%d exceeds default size %dx%d", w.MinWidth, w.MinHeight, w.Width, w.Height)}
		}
	}
	return nil
}
