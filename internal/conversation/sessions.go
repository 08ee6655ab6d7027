package conversation

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is how long a flow waits for a reply before it expires.
const DefaultTTL = 5 * time.Minute

// Sessions holds the pending session of every chat.
type Sessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[int64]*Session
}

// NewSessions creates an empty session table.
// A ttl of zero or less disables expiry.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[int64]*Session),
	}
}

// SetClock replaces the time source (for testing).
func (s *Sessions) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get returns a copy of the live session of a chat.
// An expired session is reported as absent but left for Expire to collect.
func (s *Sessions) Get(chatID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.expired(s.now(), s.ttl) {
		return Session{}, false
	}
	return *sess, true
}

// Begin opens a session for a chat, replacing any previous one.
func (s *Sessions) Begin(chatID int64, command string, state State) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := newSession(chatID, command, state, s.now())
	s.sessions[chatID] = sess
	return *sess
}

// Advance moves a chat's session to the next state.
// Moving to Idle ends the session. taskID is kept when zero.
// Returns false if the chat has no session.
func (s *Sessions) Advance(chatID int64, state State, taskID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return false
	}
	if state == Idle {
		delete(s.sessions, chatID)
		return true
	}
	sess.State = state
	if taskID != 0 {
		sess.TaskID = taskID
	}
	sess.UpdatedAt = s.now()
	return true
}

// End removes the session of a chat and returns it.
func (s *Sessions) End(chatID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	delete(s.sessions, chatID)
	return *sess, true
}

// Expire removes every session older than the TTL and returns them ordered by chat ID.
func (s *Sessions) Expire() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []Session
	for chatID, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			expired = append(expired, *sess)
			delete(s.sessions, chatID)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].ChatID < expired[j].ChatID
	})
	return expired
}

// Age returns how long ago a session started.
func (s *Sessions) Age(sess Session) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Sub(sess.StartedAt)
}

// Len returns the number of sessions, live or expired.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
