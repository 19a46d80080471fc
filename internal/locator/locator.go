// Package locator finds the active data file for a group identity.
// Absence is a valid state, never an error: brand-new groups have no file.
package locator

import (
	"path/filepath"

	"github.com/starford/daybook/internal/group"
	"github.com/starford/daybook/internal/naming"
	"github.com/starford/daybook/internal/storage"
)

// Find returns the relative path of the identity's data file, or ok=false
// when the area directory or the file is absent. When several files match
// (stale timestamped versions of a calendar group) the lexicographically
// last one wins; older matches are never treated as versions.
func Find(fs storage.Provider, id group.Identity) (string, bool) {
	area := naming.AreaDir(id)
	entries, err := fs.ListDir(area)
	if err != nil {
		return "", false
	}
	var match string
	for _, e := range entries {
		if e.Dir || !naming.Matches(id, e.Name) {
			continue
		}
		if e.Name > match {
			match = e.Name
		}
	}
	if match == "" {
		return "", false
	}
	return filepath.Join(area, match), true
}

// Exists reports whether a data file exists for the identity.
func Exists(fs storage.Provider, id group.Identity) bool {
	_, ok := Find(fs, id)
	return ok
}
