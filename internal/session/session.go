// Package session holds the in-memory record of the currently authenticated
// user. It is a pure state container: no network calls originate here.
package session

import (
	"sync"

	"careerscope/internal/types"
)

// Listener is notified after every session transition so dependent state
// (such as the upload surface availability) can be recomputed.
type Listener func(user *types.UserRecord)

// Session holds the current authenticated user record, or nil when no user
// is signed in. Exactly one instance exists per application; it is created
// by the app wiring and injected into the workflows rather than living in a
// package global.
type Session struct {
	mu        sync.Mutex
	user      *types.UserRecord
	listeners []Listener
}

// New creates an unauthenticated session
func New() *Session {
	return &Session{}
}

// Subscribe registers a listener invoked on every login and logout.
// Listeners are called synchronously, after the transition is applied.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Login sets the current user. The record is copied so callers cannot
// mutate session state through a retained pointer.
func (s *Session) Login(user types.UserRecord) {
	s.mu.Lock()
	u := user
	s.user = &u
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(&u)
	}
}

// Logout clears the current user
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(nil)
	}
}

// User returns a copy of the current user record, or nil when signed out
func (s *Session) User() *types.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is signed in. The upload surface is
// unlocked iff this returns true.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}
