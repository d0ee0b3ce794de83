// Package session holds the per-visitor UI state of the lookup page.
package session

import (
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Token identifies one submitted search within a session. Tokens increase
// monotonically; only the latest one may change the visible outcome.
type Token uint64

// View is an immutable copy of the state, handed to the renderer.
type View struct {
	Query   string
	Loading bool
	Outcome *weather.Outcome
}

// State is the session's query text, loading flag and last outcome.
// It is only changed through Submit and Complete.
type State struct {
	mu sync.Mutex

	query   string
	loading bool
	outcome *weather.Outcome

	latest    Token
	touchedAt time.Time
}

// New returns an empty state touched at now.
func New(now time.Time) *State {
	return &State{touchedAt: now}
}

// Submit records a new search and returns its token. Any earlier search
// still in flight becomes stale.
func (s *State) Submit(query string, now time.Time) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.query = query
	s.loading = true
	s.touchedAt = now
	return s.latest
}

// Complete applies the outcome of the search identified by token.
// It returns false, leaving the state untouched, when token is stale.
func (s *State) Complete(token Token, outcome weather.Outcome, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		return false
	}
	s.loading = false
	s.outcome = &outcome
	s.touchedAt = now
	return true
}

// Snapshot returns a copy of the visible state.
func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Query: s.query, Loading: s.loading}
	if s.outcome != nil {
		o := *s.outcome
		v.Outcome = &o
	}
	return v
}

// Touch marks the state as used at now.
func (s *State) Touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

// TouchedAt reports when the state was last used.
func (s *State) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
