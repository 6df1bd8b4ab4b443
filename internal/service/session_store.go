package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardFactory builds a fresh dashboard for a session id.
type DashboardFactory func(sessionID string) *Dashboard

type session struct {
	dashboard *Dashboard
	lastSeen  time.Time
}

// SessionStore keeps one dashboard per browser session and expires idle ones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	factory  DashboardFactory
	now      func() time.Time
}

// NewSessionStore constructs the store.
func NewSessionStore(ttl time.Duration, factory DashboardFactory) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the live dashboard for id and refreshes its expiry.
func (s *SessionStore) Get(id string) (*Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess.dashboard, true
}

// Reset replaces the dashboard for id with a fresh one, as a page reload does.
// Only ids of live sessions are kept; any other id is replaced by a new one.
// The id in use is returned.
func (s *SessionStore) Reset(id string) (string, *Dashboard) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, s.now()) {
		delete(s.sessions, id)
		id = uuid.NewString()
	}
	s.mu.Unlock()

	dashboard := s.factory(id)

	s.mu.Lock()
	s.sessions[id] = &session{dashboard: dashboard, lastSeen: s.now()}
	s.mu.Unlock()
	return id, dashboard
}

// Sweep evicts expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				logger.Debug("expired dashboard sessions", zap.Int("removed", removed), zap.Int("remaining", s.Len()))
			}
		}
	}
}

func (s *SessionStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
