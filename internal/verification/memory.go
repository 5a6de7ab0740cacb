package verification

import (
	"context"
	"sync"
	"time"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Expired entries linger until
// Sweep or a Consume for the same email.
type MemoryStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]entry
}

func NewMemoryStore(c clock.Clock) *MemoryStore {
	if c == nil {
		c = clock.NewSystem()
	}
	return &MemoryStore{clock: c, entries: map[string]entry{}}
}

func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[normalizeEmail(email)] = entry{code: code, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, email, code string) (bool, error) {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	if !codesEqual(e.code, code) {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of pending entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
