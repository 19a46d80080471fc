// Package storage defines the data-root file-system abstraction.
package storage

// Entry is one directory listing result.
type Entry struct {
	Name string
	Dir  bool
}

// Provider is the interface for data-root file operations. All paths are
// relative to the data root.
type Provider interface {
	// ListDir returns the entries of dir sorted by name. A missing
	// directory is not an error; it returns an empty listing.
	ListDir(dir string) ([]Entry, error)
	// ReadFile returns the raw bytes of the file at path.
	ReadFile(path string) ([]byte, error)
	// WriteNew creates path exclusively and writes content. It creates
	// parent directories as needed and fails if anything already exists
	// at path.
	WriteNew(path string, content []byte) error
	// Remove deletes the file at path and verifies it is gone. Removing
	// an absent file is not an error.
	Remove(path string) error
	// Exists reports whether anything exists at path.
	Exists(path string) bool
}
