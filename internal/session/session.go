// Package session implements the in-memory session registry. A single Store
// is constructed in main and injected into the handlers and middleware that
// need it; there is no package-level singleton. Sessions live for the
// lifetime of the process: there is no TTL and no persistence, so a restart
// logs everyone out.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// CookieName is the name of the cookie that carries the session identifier.
const CookieName = "session_id"

// Session associates an opaque identifier with per-login state. The only
// value the application stores today is the authenticated user's id, exposed
// through typed accessors so callers never touch the data map directly.
// Sessions are handed out by a Store and must only be mutated through it.
type Session struct {
	ID   string
	data map[string]any
}

// Store is the process-wide session registry. Handlers run on real
// goroutines, so every read and write of the registry and of session data
// goes through the store's mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty session registry.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a fresh session under a random unguessable identifier and
// returns it. Collisions are not handled beyond UUID randomness.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		data: make(map[string]any),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a session by id. The second return value distinguishes a
// missing session from one that exists but has no user attached; callers
// must treat both as "not authenticated" but they are different states.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// Destroy removes the session for the given id. A subsequent Get on that id
// reports missing. Destroying an unknown id is a no-op.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// SetUserID marks the session as authenticated for the given user.
func (s *Store) SetUserID(sess *Session, userID uint64) {
	s.mu.Lock()
	sess.data["userId"] = userID
	s.mu.Unlock()
}

// UserID returns the authenticated user's id for the session, or false when
// the session has no user attached (login form viewed but not submitted).
func (s *Store) UserID(sess *Session) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := sess.data["userId"].(uint64)
	return id, ok
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
