// Package home manages the process-wide ~/.vira layout: toolchain
// binaries, the installed-library store, logs, the download cache, and the
// global config file. The layout is resolved once at startup and passed
// explicitly to components that need it; there are no ambient globals.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvOverride redirects the home root, used by tests and sandboxed setups.
const EnvOverride = "VIRA_HOME"

const (
	dirName    = ".vira"
	configName = "config.yml"
	logName    = "vira.log"
)

// Home is the resolved on-disk layout.
type Home struct {
	Root  string
	Bin   string
	Libs  string
	Logs  string
	Cache string
}

// Resolve determines the home root from VIRA_HOME or the user home
// directory, without touching the filesystem.
func Resolve() (*Home, error) {
	if override := os.Getenv(EnvOverride); override != "" {
		return At(override), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home: resolve user home: %w", err)
	}
	return At(filepath.Join(userHome, dirName)), nil
}

// At builds the layout rooted at an explicit directory.
func At(root string) *Home {
	return &Home{
		Root:  root,
		Bin:   filepath.Join(root, "bin"),
		Libs:  filepath.Join(root, "libs"),
		Logs:  filepath.Join(root, "logs"),
		Cache: filepath.Join(root, "cache"),
	}
}

// Open resolves the layout and creates any missing directories.
func Open() (*Home, error) {
	h, err := Resolve()
	if err != nil {
		return nil, err
	}
	if err := h.EnsureLayout(); err != nil {
		return nil, err
	}
	return h, nil
}

// EnsureLayout creates the home root and its subdirectories if absent.
func (h *Home) EnsureLayout() error {
	for _, dir := range []string{h.Root, h.Bin, h.Libs, h.Logs, h.Cache} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("home: create %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigPath is the fixed location of the global config file.
func (h *Home) ConfigPath() string {
	return filepath.Join(h.Root, configName)
}

// LogPath is the fixed location of the CLI log file.
func (h *Home) LogPath() string {
	return filepath.Join(h.Logs, logName)
}

// HistoryDBPath is the sqlite install-history database location under the
// cache directory.
func (h *Home) HistoryDBPath() string {
	return filepath.Join(h.Cache, "vira.db")
}
