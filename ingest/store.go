package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps sessions in memory and forgets them after ttl of inactivity.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty Store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session with a random id.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.now())
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrStaleSession
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(sess) {
		return nil, ErrStaleSession
	}
	sess.touch(s.now())
	return sess, nil
}

// Resolve returns the session for id, creating a fresh one when id is
// unknown or expired. created reports which happened.
func (s *Store) Resolve(id string) (sess *Session, created bool) {
	if sess, err := s.Get(id); err == nil {
		return sess, false
	}
	return s.Create(), true
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.idleSince()) > s.ttl
}
