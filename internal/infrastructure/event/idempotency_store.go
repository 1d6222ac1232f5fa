package event

import (
	"context"
	"sync"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
)

const storeSweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps seen keys in a map with per-entry expiry.
// It is process-local, which matches the in-process event bus it guards.
type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	seen     map[string]time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a background
// sweep that drops expired keys.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		seen: make(map[string]time.Time),
		done: make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// MarkProcessed records the key unless a live entry already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, ok := s.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}
	s.seen[key] = now.Add(ttl)
	return true, nil
}

// Close stops the sweep goroutine. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	ticker := time.NewTicker(storeSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *InMemoryIdempotencyStore) removeExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, expiry := range s.seen {
		if now.After(expiry) {
			delete(s.seen, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
