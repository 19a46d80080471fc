// Package groupstore loads, saves, and deletes the persisted payload of a
// single group. It layers the delete-before-write protocol and the
// placeholder policy on top of the storage primitives.
package groupstore

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/daybook/internal/clock"
	"github.com/starford/daybook/internal/group"
	"github.com/starford/daybook/internal/locator"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/naming"
	"github.com/starford/daybook/internal/storage"
)

// Store is the group data store. It is not safe for concurrent operations
// on the same identity; callers serialize those (see the dispatch package).
// The internal bookkeeping (load-time paths, last failure) is guarded so
// that operations on distinct identities may overlap.
type Store struct {
	fs    storage.Provider
	clock clock.Clock
	log   *slog.Logger

	mu          sync.Mutex
	loaded      map[string]string // identity key -> path loaded or written this session
	lastFailure string
}

// New creates a group data store over the given provider.
func New(fs storage.Provider, clk clock.Clock, log *slog.Logger) *Store {
	return &Store{fs: fs, clock: clk, log: log, loaded: make(map[string]string)}
}

// LastFailure returns the reason string of the most recent failed save or
// delete, or "" when the last operation succeeded.
func (s *Store) LastFailure() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFailure
}

// Load reads the identity's payload. A missing file yields (nil, nil);
// the caller default-constructs fresh properties and an empty list. The
// located path is remembered as soon as the file is found, even when it
// fails to decode, so that a later Save replaces the corrupt version via
// the usual delete-before-write step instead of tripping a name conflict.
func (s *Store) Load(id group.Identity) (*models.Payload, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	path, ok := locator.Find(s.fs, id)
	if !ok {
		return nil, nil
	}
	s.mu.Lock()
	s.loaded[id.Key()] = path
	s.mu.Unlock()
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, s.fail(id, fmt.Errorf("load: %w", err))
	}
	payload, err := models.DecodePayload(data)
	if err != nil {
		return nil, s.fail(id, fmt.Errorf("load %s: %w", path, err))
	}
	return payload, nil
}

// Save persists the payload for the identity:
//
//  1. the file loaded (or last written) this session is deleted first; a
//     delete that leaves the file in place aborts the save,
//  2. an empty record list is written only for types with the placeholder
//     policy; otherwise the save succeeds without producing a file,
//  3. the target path is freshly computed (timestamped for calendar
//     kinds) and must not already exist.
//
// Every failure records a retrievable reason and leaves no partial file.
func (s *Store) Save(id group.Identity, payload *models.Payload) error {
	if err := id.Validate(); err != nil {
		return s.fail(id, err)
	}
	d := id.Type.Descriptor()
	key := id.Key()

	s.mu.Lock()
	prior, hadPrior := s.loaded[key]
	s.mu.Unlock()
	if hadPrior {
		if err := s.fs.Remove(prior); err != nil {
			return s.fail(id, fmt.Errorf("save: remove previous version: %w", err))
		}
		s.forget(key)
	}

	if len(payload.Records) == 0 && !d.PersistWhenEmpty {
		s.clearFailure()
		return nil
	}

	target := naming.SavePath(id, s.clock.Now())
	data, err := models.EncodePayload(payload)
	if err != nil {
		return s.fail(id, fmt.Errorf("save: encode: %w", err))
	}
	if err := s.fs.WriteNew(target, data); err != nil {
		return s.fail(id, fmt.Errorf("save: %w", err))
	}

	s.mu.Lock()
	s.loaded[key] = target
	s.lastFailure = ""
	s.mu.Unlock()
	s.log.Debug("group saved", slog.String("group", key), slog.String("path", target))
	return nil
}

// Delete removes the identity's data file, independent of any save.
// A group with no file deletes successfully.
func (s *Store) Delete(id group.Identity) error {
	if err := id.Validate(); err != nil {
		return s.fail(id, err)
	}
	path, ok := locator.Find(s.fs, id)
	if !ok {
		s.forget(id.Key())
		s.clearFailure()
		return nil
	}
	if err := s.fs.Remove(path); err != nil {
		return s.fail(id, fmt.Errorf("delete: %w", err))
	}
	s.forget(id.Key())
	s.clearFailure()
	s.log.Debug("group deleted", slog.String("group", id.Key()), slog.String("path", path))
	return nil
}

// Exists reports whether a data file exists for the identity.
func (s *Store) Exists(id group.Identity) bool {
	return locator.Exists(s.fs, id)
}

func (s *Store) forget(key string) {
	s.mu.Lock()
	delete(s.loaded, key)
	s.mu.Unlock()
}

func (s *Store) clearFailure() {
	s.mu.Lock()
	s.lastFailure = ""
	s.mu.Unlock()
}

// fail records the reason string, logs it, and hands the error back for
// the caller's explicit success/failure signal.
func (s *Store) fail(id group.Identity, err error) error {
	s.mu.Lock()
	s.lastFailure = err.Error()
	s.mu.Unlock()
	s.log.Warn("group store failure",
		slog.String("group", id.Key()),
		slog.String("error", err.Error()))
	return err
}
