package session

import (
	"context"
	"sync"
	"time"
)

const janitorInterval = 5 * time.Minute

type memoryEntry struct {
	products   map[string]struct{}
	expiration time.Time
}

// MemoryOrderedSet is the default in-process OrderedSet. Sessions expire
// after the configured TTL; a janitor sweeps expired entries.
type MemoryOrderedSet struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
}

// NewMemoryOrderedSet creates a new in-memory ordered-items store
func NewMemoryOrderedSet(ttl time.Duration) *MemoryOrderedSet {
	return &MemoryOrderedSet{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
	}
}

func (s *MemoryOrderedSet) Add(_ context.Context, sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.sessions[sessionID]
	if !ok || time.Now().After(ent.expiration) {
		ent = &memoryEntry{products: make(map[string]struct{})}
		s.sessions[sessionID] = ent
	}
	ent.products[productID] = struct{}{}
	ent.expiration = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryOrderedSet) Contains(_ context.Context, sessionID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.sessions[sessionID]
	if !ok || time.Now().After(ent.expiration) {
		return false, nil
	}
	_, found := ent.products[productID]
	return found, nil
}

func (s *MemoryOrderedSet) List(_ context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.sessions[sessionID]
	if !ok || time.Now().After(ent.expiration) {
		return []string{}, nil
	}

	ids := make([]string, 0, len(ent.products))
	for id := range ent.products {
		ids = append(ids, id)
	}
	return ids, nil
}

// StartJanitor sweeps expired sessions until ctx is cancelled
func (s *MemoryOrderedSet) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *MemoryOrderedSet) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, ent := range s.sessions {
		if now.After(ent.expiration) {
			delete(s.sessions, id)
		}
	}
}
