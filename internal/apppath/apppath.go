package apppath

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "tategaki"

// ConfigDir returns the directory holding config.yaml. Priority:
// 1) XDG_CONFIG_HOME/tategaki (if set)
// 2) ~/.config/tategaki
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// DataDir returns the per-user directory where window state is persisted.
// It is the same directory as ConfigDir.
func DataDir() (string, error) {
	return ConfigDir()
}

// StateDir returns the window-state directory, creating it if needed. A
// non-empty override wins over the default location.
func StateDir(override string) (string, error) {
	dir := override
	if dir == "" {
		var err error
		dir, err = DataDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state dir: %w", err)
	}
	return dir, nil
}

// LogPath returns the default log file location. Priority:
// 1) XDG_STATE_HOME/tategaki/tategaki.log (if set)
// 2) ~/.local/state/tategaki/tategaki.log
func LogPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName, AppName+".log"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", AppName, AppName+".log"), nil
}
