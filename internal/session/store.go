// Package session tracks live login sessions so that logout actually revokes
// a token instead of waiting for its expiry.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// ErrNoSession indicates the session id is unknown or expired.
var ErrNoSession = errors.New("session: not found")

// Store persists the mapping of session id to user id.
type Store interface {
	Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
	Close()
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	stopCh   chan struct{}
	once     sync.Once
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryStore returns an in-process Store. Sessions do not survive a
// restart; production deployments use the Redis store instead.
func NewMemoryStore() Store {
	s := &memoryStore{
		sessions: make(map[string]memoryEntry),
		stopCh:   make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *memoryStore) Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrNoSession
	}
	return entry.userID, nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memoryStore) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

func (s *memoryStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *memoryStore) Close() {
	s.once.Do(func() {
		close(s.stopCh)
	})
}
