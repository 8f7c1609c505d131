// File: internal/address/session.go
package address

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one user's in-flight address edit. Sessions are ephemeral:
// they live in memory, expire after a fixed TTL, and are removed on save
// or cancel. A user may hold several concurrent sessions (one per open
// editor), each keyed by its own id.
type Session struct {
	ID        string
	UserID    string
	State     State
	View      View
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store is the in-memory session registry. All access goes through the
// mutex; sessions are value-copied in and out so callers never share a
// pointer with the store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create registers a new session for the user and returns a copy of it.
func (st *Store) Create(userID string, view View) Session {
	now := time.Now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     StateReady,
		View:      view,
		CreatedAt: now,
		ExpiresAt: now.Add(st.ttl),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get returns a copy of the session when it exists, belongs to the user,
// and has not expired. Expired sessions are removed on access.
func (st *Store) Get(userID, id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok || session.UserID != userID {
		return Session{}, false
	}
	if session.expired(time.Now().UTC()) {
		delete(st.sessions, id)
		return Session{}, false
	}
	return session, true
}

// Update applies fn to the stored session under the store lock, so
// concurrent mutations of the same session serialize instead of losing
// writes. The ownership and expiry rules are the same as Get's; a session
// removed by expiry or cancellation stays removed.
func (st *Store) Update(userID, id string, fn func(*Session)) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok || session.UserID != userID {
		return Session{}, false
	}
	if session.expired(time.Now().UTC()) {
		delete(st.sessions, id)
		return Session{}, false
	}
	fn(&session)
	st.sessions[id] = session
	return session, true
}

// Delete removes the session when it belongs to the user.
func (st *Store) Delete(userID, id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok || session.UserID != userID {
		return false
	}
	delete(st.sessions, id)
	return true
}

// SweepExpired removes every expired session and returns how many were
// dropped. Called periodically by the cleanup job.
func (st *Store) SweepExpired() int {
	now := time.Now().UTC()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, session := range st.sessions {
		if session.expired(now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions, expired or not.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
