package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/payportal/pkg/cache"
)

type memoryEntry struct {
	state     cache.LockoutState
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is not
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry), now: time.Now}
}

// live returns the entry for key, dropping it when expired. Callers hold mu.
func (s *MemoryStore) live(key string) *memoryEntry {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil
	}
	return e
}

func (s *MemoryStore) Get(_ context.Context, key string) (cache.LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.live(key); e != nil {
		return e.state, nil
	}
	return cache.LockoutState{}, nil
}

func (s *MemoryStore) RecordFailure(
	_ context.Context,
	key string,
	lockUntil func(failures int) time.Time,
	lifetime time.Duration,
) (cache.LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(key)
	if e == nil {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.state.Failures++
	if until := lockUntil(e.state.Failures); !until.IsZero() {
		u := until.UTC()
		e.state.LockedUntil = &u
	}
	e.expiresAt = s.now().Add(lifetime)
	return e.state, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
