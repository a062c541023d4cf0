// Package session keeps the live booking-form controllers between HTTP
// requests, the way the browser kept one draft per open form. Sessions
// are memory-only: abandoning one loses the draft, exactly as navigating
// away did.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"roamingg/internal/booking"
)

type entry struct {
	controller *booking.Controller
	deadline   time.Time
}

// Store maps uuid handles to live controllers. Idle sessions are swept on
// a background ticker; swept and deleted sessions are closed so a late
// submission response cannot mutate a torn-down draft.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
	go s.sweep()
	return s
}

func (s *Store) sweep() {
	ticker := time.NewTicker(s.ttl / 2)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, e := range s.sessions {
			if now.After(e.deadline) {
				e.controller.Close()
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// Put registers a controller and returns its session handle.
func (s *Store) Put(c *booking.Controller) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &entry{controller: c, deadline: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return id
}

// Get returns the controller for a handle and pushes its idle deadline
// out, the way any form interaction keeps the browser session alive.
func (s *Store) Get(id string) (*booking.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.deadline = time.Now().Add(s.ttl)
	return e.controller, true
}

// Delete closes and forgets a session. Safe to call for unknown handles.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if ok {
		e.controller.Close()
	}
}

// Len reports the number of live sessions, exported for metrics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
