package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/application/panels"
)

// sessionCookie scopes a browser to its panel set. Sessions live only in
// memory; a restart starts everyone fresh, which matches the product's
// no-persistence contract.
const sessionCookie = "culinaglass_session"

type session struct {
	panels   *panels.Set
	lastSeen time.Time
}

// SessionStore hands out one panels.Set per browser session and expires
// idle ones. newSet is called lazily on first sight of a cookie.
type SessionStore struct {
	newSet func() *panels.Set
	maxAge time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates the store and starts its expiry sweep.
func NewSessionStore(newSet func() *panels.Set, maxAge time.Duration, logger *zap.Logger) *SessionStore {
	if maxAge <= 0 {
		maxAge = 12 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionStore{
		newSet:   newSet,
		maxAge:   maxAge,
		logger:   logger.Named("sessions"),
		sessions: make(map[string]*session),
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Panels returns the caller's panel set, creating the session and setting
// the cookie on first contact.
func (s *SessionStore) Panels(w http.ResponseWriter, r *http.Request) *panels.Set {
	now := time.Now()

	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		if sess, ok := s.sessions[c.Value]; ok {
			sess.lastSeen = now
			s.mu.Unlock()
			return sess.panels
		}
		s.mu.Unlock()
	}

	id := uuid.New().String()
	sess := &session{panels: s.newSet(), lastSeen: now}

	s.mu.Lock()
	s.sessions[id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.maxAge / time.Second),
	})

	s.logger.Debug("session created", zap.Int("active", count))
	return sess.panels
}

// Len reports active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the expiry sweep.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) sweep() {
	ticker := time.NewTicker(s.maxAge / 4)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.Sub(sess.lastSeen) > s.maxAge {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
