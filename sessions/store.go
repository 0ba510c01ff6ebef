// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sessions

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/voteform"
)

var ErrSessionNotFound = errors.New("form session not found")

// Session is one open form. Its controller is only reachable through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.Mutex
	form *voteform.Controller
	now  func() time.Time

	// unix nanoseconds, read without holding mu
	touchedAt atomic.Int64
}

// Do runs fn with exclusive access to the form and marks the session as
// recently used
func (s *Session) Do(fn func(form *voteform.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	return fn(s.form)
}

// Snapshot returns the current form state without touching the session
func (s *Session) Snapshot() voteform.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Snapshot()
}

func (s *Session) TouchedAt() time.Time {
	return time.Unix(0, s.touchedAt.Load()).UTC()
}

func (s *Session) touch() {
	s.touchedAt.Store(s.now().UnixNano())
}

// Store holds open form sessions in memory
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	metrics  *metrics.Metrics
}

func NewStore(m *metrics.Metrics) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
		metrics:  m,
	}
}

// Create builds a form from cfg and registers it under a fresh ID
func (s *Store) Create(cfg voteform.Config) (*Session, error) {
	form, err := voteform.New(cfg)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		form:      form,
		now:       s.now,
	}
	sess.touchedAt.Store(now.UnixNano())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return sess, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session and reports whether it existed
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were removed
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.TouchedAt().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	s.metrics.AddSessionsExpired(removed)
	return removed
}

// BroadcastResults pushes fresh tallies into every open form. It does not
// count as activity for expiry. It returns the sorted slugs that some open
// form lists without a tally entry.
func (s *Store) BroadcastResults(tallies []voteform.Tally) []string {
	s.mu.RLock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.RUnlock()

	var missing []string
	for _, sess := range open {
		sess.mu.Lock()
		sess.form.SetResults(tallies)
		missing = append(missing, sess.form.Snapshot().MissingTallies...)
		sess.mu.Unlock()
	}

	slices.Sort(missing)
	return slices.Compact(missing)
}
