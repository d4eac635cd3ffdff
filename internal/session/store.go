package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"coffeefinder-api/internal/display"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session: not found")

// Session bundles a screen controller with the surfaces it renders into.
type Session struct {
	Screen *CoffeeMap
	Map    *display.Map
	List   *display.List

	mu       sync.Mutex
	lastSeen time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.Screen.ID()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionCloser is implemented by publishers that hold per-session subscribers.
type SessionCloser interface {
	CloseSession(id string)
}

// Options configure the sessions created by a Store.
type Options struct {
	RegionRadiusMeters float64
	PinIcon            string
	TTL                time.Duration
}

// Store keeps the live sessions keyed by id.
type Store struct {
	searcher  Searcher
	router    Router
	publisher Publisher
	closer    SessionCloser
	opts      Options
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
// When publisher is also a SessionCloser, subscribers of removed sessions are closed.
func NewStore(searcher Searcher, router Router, publisher Publisher, opts Options) *Store {
	closer, _ := publisher.(SessionCloser)
	return &Store{
		searcher:  searcher,
		router:    router,
		publisher: publisher,
		closer:    closer,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a new session.
func (s *Store) Create() *Session {
	id := uuid.NewString()
	mapView := display.NewMap(s.opts.PinIcon)
	list := display.NewList()

	sess := &Session{
		Screen:   NewCoffeeMap(id, s.searcher, s.router, mapView, list, s.publisher, s.opts.RegionRadiusMeters),
		Map:      mapView,
		List:     list,
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info().Str("session", id).Msg("session created")
	return sess
}

// Get returns the session with id and marks it as active.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

// Delete removes the session with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	s.closeSession(id)
	log.Info().Str("session", id).Msg("session deleted")
	return nil
}

func (s *Store) closeSession(id string) {
	if s.closer != nil {
		s.closer.CloseSession(id)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the configured TTL and returns how many were removed.
func (s *Store) Sweep() int {
	if s.opts.TTL <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.opts.TTL {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.closeSession(id)
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Info().Int("removed", n).Int("live", s.Len()).Msg("expired sessions swept")
			}
		}
	}
}
