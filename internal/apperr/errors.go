// Package apperr defines the sentinel errors shared across the Daybook core.
package apperr

import "errors"

var (
	// ErrNotFound marks the expected, silent absence of a group or file.
	ErrNotFound = errors.New("not found")
	// ErrNameConflict marks a save or delete target that already exists
	// (or is a directory) when it must not.
	ErrNameConflict = errors.New("name conflict")
	// ErrMalformedFilename marks a calendar filename the codec cannot decode.
	ErrMalformedFilename = errors.New("malformed filename")
	// ErrMalformedPayload marks a persisted payload whose outer shape is not
	// the expected one- or two-element JSON array.
	ErrMalformedPayload = errors.New("malformed payload")
)
