// Package dispatch serializes persistence operations per group identity.
// The core load/save/delete path is not internally thread-safe for a
// single group; background workers funnel through a Serializer so that
// exactly one operation is outstanding per identity at a time.
package dispatch

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/starford/daybook/internal/group"
)

// Serializer grants at most one in-flight operation per identity key.
// Operations on distinct identities run freely in parallel.
type Serializer struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// NewSerializer creates an empty serializer.
func NewSerializer() *Serializer {
	return &Serializer{sems: make(map[string]*semaphore.Weighted)}
}

// Do runs fn while holding the identity's slot, waiting for any operation
// already in flight for the same identity. ctx cancels the wait, not fn.
func (s *Serializer) Do(ctx context.Context, id group.Identity, fn func() error) error {
	sem := s.sem(id.Key())
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)
	return fn()
}

func (s *Serializer) sem(key string) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.sems[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.sems[key] = sem
	}
	return sem
}
