package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Locate walks the directory ancestry from startDir upward and returns the
// path of the nearest enclosing bytes.yml. It never descends into
// subdirectories; a manifest in a sibling or child directory is invisible.
// When no ancestor up to the filesystem root carries a manifest, the
// returned error wraps ErrNotFound.
func Locate(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched upward from %s)", ErrNotFound, startDir)
		}
		dir = parent
	}
}

// LocateFromWorkingDir is the common-case entry point used by commands:
// Locate starting at the process working directory.
func LocateFromWorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return Locate(cwd)
}
