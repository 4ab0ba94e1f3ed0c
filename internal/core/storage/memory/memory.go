// Package memory provides the explicit ephemeral fallback store. It exists
// so the service can still take submissions when no durable backend is
// configured; responses built on it must surface the durability gap.
package memory

import (
	"context"
	"sync"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Store is a process-local, mutex-guarded submission collection.
// Data does not survive a restart; Durable reports false accordingly.
type Store struct {
	mu   sync.RWMutex
	subs []*v1.Submission
}

// NewStore creates an empty ephemeral store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, sub *v1.Submission) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers cannot mutate records after creation.
	c := *sub
	s.subs = append(s.subs, &c)
	return sub.ID, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*v1.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*v1.Submission, 0, len(s.subs))
	for _, sub := range s.subs {
		c := *sub
		out = append(out, &c)
	}
	return out, nil
}

func (s *Store) ReplaceAll(ctx context.Context, subs []*v1.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*v1.Submission, 0, len(subs))
	for _, sub := range subs {
		c := *sub
		next = append(next, &c)
	}
	s.subs = next
	return nil
}

// Durable reports false: this store is the acknowledged fallback.
func (s *Store) Durable() bool {
	return false
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Reset is the administrative clear of transient state. The durable
// backends deliberately have no equivalent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = nil
}
