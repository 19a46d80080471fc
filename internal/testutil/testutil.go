// Package testutil provides shared test helpers for setting up data roots.
package testutil

import (
	"testing"
	"time"

	"github.com/starford/daybook/internal/storage"
)

// TestRoot creates a temporary data root with a storage.FS over it.
func TestRoot(t *testing.T) (string, *storage.FS) {
	t.Helper()
	root := t.TempDir()
	fs, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, fs
}

// Date builds a UTC midnight date, the canonical form for group dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
