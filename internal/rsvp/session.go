package rsvp

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions keeps one wizard per browser session in memory. Idle sessions
// expire after ttl; expiry is checked lazily on access.
type Sessions struct {
	mu       sync.Mutex
	dir      Directory
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

type session struct {
	mu       sync.Mutex
	wizard   *Wizard
	lastSeen time.Time
}

// NewSessions creates an empty registry whose wizards use dir
func NewSessions(dir Directory, ttl time.Duration) *Sessions {
	return &Sessions{
		dir:      dir,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// With runs fn against the wizard for id while holding that session's lock,
// creating a fresh session when id is unknown or expired. It returns the id
// actually used, which differs from the argument when a session was created.
func (s *Sessions) With(id string, fn func(*Wizard)) string {
	sess, id := s.acquire(id)
	defer sess.mu.Unlock()
	fn(sess.wizard)
	return id
}

func (s *Sessions) acquire(id string) (*session, string) {
	s.mu.Lock()
	now := s.now()
	s.sweep(now)

	sess, ok := s.sessions[id]
	if !ok || id == "" {
		id = uuid.NewString()
		sess = &session{wizard: NewWizard(s.dir)}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	s.mu.Unlock()

	sess.mu.Lock()
	return sess, id
}

// sweep drops expired sessions; callers hold s.mu
func (s *Sessions) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
