// Package deps reconciles a manifest's declared dependencies against the
// local install store under ~/.vira/libs, shelling out to vira-packages
// for anything missing.
package deps

import (
	"os"
	"path/filepath"
)

// Store is the directory-backed index of installed packages. Entries are
// named <name>-<version>; the store only ever reads existence, installs
// are delegated to the package tool.
type Store struct {
	Dir string
}

// EntryPath returns the deterministic on-disk location for name@version.
func (s Store) EntryPath(name, version string) string {
	return filepath.Join(s.Dir, name+"-"+version)
}

// Installed reports whether name@version is present in the store. Pure
// existence check, no side effects.
func (s Store) Installed(name, version string) bool {
	_, err := os.Stat(s.EntryPath(name, version))
	return err == nil
}
