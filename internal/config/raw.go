package config

type RawWindow struct {
	Title     *string `yaml:"title"`
	Class     *string `yaml:"class"`
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	MinWidth  *int    `yaml:"min_width"`
	MinHeight *int    `yaml:"min_height"`
	Resizable *bool   `yaml:"resizable"`
}

type RawLoggingConfig struct {
	File       *string `yaml:"file"`
	Format     *string `yaml:"format"`
	MaxSizeMB  *int    `yaml:"max_size_mb"`
	MaxFiles   *int    `yaml:"max_files"`
	MaxAgeDays *int    `yaml:"max_age_days"`
}

type RawConfig struct {
	LogLevel *string              `yaml:"log_level"`
	Display  *string              `yaml:"display"`
	StateDir *string              `yaml:"state_dir"`
	Fallback *string              `yaml:"fallback"`
	Logging  *RawLoggingConfig    `yaml:"logging"`
	Windows  map[string]RawWindow `yaml:"windows"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.StateDir != nil {
		out.StateDir = overlay.StateDir
	}
	if overlay.Fallback != nil {
		out.Fallback = overlay.Fallback
	}
	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLoggingConfig{}
		}
		merged := mergeRawLogging(*out.Logging, *overlay.Logging)
		out.Logging = &merged
	}
	if overlay.Windows != nil {
		windows := make(map[string]RawWindow, len(out.Windows)+len(overlay.Windows))
		for name, w := range out.Windows {
			windows[name] = w
		}
		for name, w := range overlay.Windows {
			base, ok := windows[name]
			if !ok {
				windows[name] = w
				continue
			}
			windows[name] = mergeRawWindow(base, w)
		}
		out.Windows = windows
	}

	return out
}

func mergeRawLogging(base, overlay RawLoggingConfig) RawLoggingConfig {
	out := base
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.Format != nil {
		out.Format = overlay.Format
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	if overlay.MaxAgeDays != nil {
		out.MaxAgeDays = overlay.MaxAgeDays
	}
	return out
}

func mergeRawWindow(base, overlay RawWindow) RawWindow {
	out := base
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	if overlay.Class != nil {
		out.Class = overlay.Class
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.Resizable != nil {
		out.Resizable = overlay.Resizable
	}
	return out
}
