package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tategaki/internal/geometry"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig. Windows named in
// raw that are not built in start from zero values, so they must set at
// least width and height.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		if cfg.LogLevel == "warn" {
			cfg.LogLevel = "warning"
		}
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.StateDir != nil {
		dir, err := expandHome(*raw.StateDir)
		if err != nil {
			return nil, &ValidationError{Path: "state_dir", Err: err}
		}
		cfg.StateDir = dir
	}
	if raw.Fallback != nil {
		fallback, err := geometry.ParseFallback(*raw.Fallback)
		if err != nil {
			return nil, &ValidationError{Path: "fallback", Err: err}
		}
		cfg.Fallback = fallback
	}

	if raw.Logging != nil {
		if raw.Logging.File != nil {
			file, err := expandHome(*raw.Logging.File)
			if err != nil {
				return nil, &ValidationError{Path: "logging.file", Err: err}
			}
			cfg.Logging.File = file
		}
		if raw.Logging.Format != nil {
			cfg.Logging.Format = strings.ToLower(strings.TrimSpace(*raw.Logging.Format))
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
		if raw.Logging.MaxAgeDays != nil {
			cfg.Logging.MaxAgeDays = *raw.Logging.MaxAgeDays
		}
	}

	for name, rw := range raw.Windows {
		w := cfg.Windows[name]
		if rw.Title != nil {
			w.Title = *rw.Title
		}
		if rw.Class != nil {
			w.Class = *rw.Class
		}
		if rw.Width != nil {
			w.Width = *rw.Width
		}
		if rw.Height != nil {
			w.Height = *rw.Height
		}
		if rw.MinWidth != nil {
			w.MinWidth = *rw.MinWidth
		}
		if rw.MinHeight != nil {
			w.MinHeight = *rw.MinHeight
		}
		if rw.Resizable != nil {
			w.Resizable = *rw.Resizable
		}
		cfg.Windows[name] = w
	}

	return cfg, nil
}
