package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("session not found")
)

// MemoryStore is a concurrency-safe in-memory store of page sessions.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id (UUID string)
	data map[string]*session.State

	// retention configuration
	maxSessions int           // max number of live sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which a session is swept (0 = unlimited)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*session.State),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Get returns the session for id and marks it as used.
func (s *MemoryStore) Get(id string) (*session.State, error) {
	s.mu.RLock()
	st, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	st.Touch(s.now())
	return st, nil
}

// GetOrCreate returns the session for id, or a fresh session under a new
// UUID when id is unknown or malformed. The returned id is the one in use.
func (s *MemoryStore) GetOrCreate(id string) (string, *session.State) {
	if _, err := uuid.Parse(id); err == nil {
		if st, err := s.Get(id); err == nil {
			return id, st
		}
	}

	now := s.now()
	newID := uuid.NewString()
	st := session.New(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[newID] = st

	// Enforce retention by count.
	if s.maxSessions > 0 && len(s.data) > s.maxSessions {
		s.evictOldestLocked(newID)
	}
	return newID, st
}

// Sweep removes sessions idle for longer than maxAge and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, st := range s.data {
		if st.TouchedAt().Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked(keep string) {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, st := range s.data {
		if id == keep {
			continue
		}
		at := st.TouchedAt()
		if oldestID == "" || at.Before(oldestAt) {
			oldestID, oldestAt = id, at
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}
