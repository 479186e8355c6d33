// Package session owns the bearer token and makes its lifecycle observable.
// It is the only writer of the token; synchronizers and handlers read it
// through the backend client.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/clinicops/clinic-console/pkg/logging"
)

// EventKind describes a session lifecycle change.
type EventKind string

const (
	EventLogin   EventKind = "login"
	EventLogout  EventKind = "logout"
	EventExpired EventKind = "expired"
)

// Event is delivered to subscribers whenever the token changes.
type Event struct {
	Kind EventKind
}

// Session is the single source of truth for the bearer token. The token is
// cached in memory and persisted through the TokenStore; clearing it (logout
// or backend 401) notifies every subscriber so the presentation layer can
// redirect to login.
type Session struct {
	store  TokenStore
	logger *logging.Logger

	mu     sync.Mutex
	token  string
	loaded bool
	nextID int
	subs   map[int]func(Event)
}

// New creates a session backed by the given token store.
func New(store TokenStore, logger *logging.Logger) *Session {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{
		store:  store,
		logger: logger,
		subs:   make(map[int]func(Event)),
	}
}

// Token returns the current bearer token, loading it from durable storage on
// first use. An empty token with nil error means unauthenticated.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		token, err := s.store.Get(ctx)
		if err != nil {
			return "", fmt.Errorf("session: restore token: %w", err)
		}
		s.token = token
		s.loaded = true
	}
	return s.token, nil
}

// SetToken stores a freshly issued token and announces the login.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session: refusing to store empty token")
	}
	s.mu.Lock()
	if err := s.store.Set(ctx, token); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = token
	s.loaded = true
	s.mu.Unlock()

	s.notify(Event{Kind: EventLogin})
	return nil
}

// Clear wipes the token on explicit logout.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.clearToken(ctx); err != nil {
		return err
	}
	s.notify(Event{Kind: EventLogout})
	return nil
}

// Expire wipes the token after the backend rejected it. Subscribers receive
// EventExpired so every open screen can force navigation to login.
func (s *Session) Expire(ctx context.Context) error {
	if err := s.clearToken(ctx); err != nil {
		return err
	}
	s.logger.Warn("session expired, token cleared")
	s.notify(Event{Kind: EventExpired})
	return nil
}

// Subscribe registers a callback for session events. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) clearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.token = ""
	s.loaded = true
	return nil
}

// notify calls subscribers outside the lock; a subscriber may re-enter the
// session (e.g. to read the now-empty token).
func (s *Session) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
