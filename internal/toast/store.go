// Package toast holds the single-slot notification message and its
// auto-dismiss policy.
package toast

import (
	"sync"

	"github.com/spec-kit/ticket-triage/internal/events"
)

// Message is the value broadcast to subscribers. Present is false when no
// toast is showing.
type Message struct {
	Version uint64
	Text    string
	Present bool
}

// Store keeps at most one pending message. A new message overwrites an
// unseen one; there is no queue.
type Store struct {
	mu        sync.RWMutex
	current   Message
	listeners *events.Registry[Message]
}

// NewStore returns an empty toast store.
func NewStore() *Store {
	return &Store{listeners: events.NewRegistry[Message]()}
}

// Message returns the current text and whether one is set.
func (s *Store) Message() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Text, s.current.Present
}

// Current returns the full message including its version.
func (s *Store) Current() Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the message and notifies subscribers. An empty text clears
// the slot.
func (s *Store) Set(text string) {
	s.write(func(m *Message) {
		m.Text = text
		m.Present = text != ""
	})
}

// Clear removes the message and notifies subscribers.
func (s *Store) Clear() {
	s.write(func(m *Message) {
		m.Text = ""
		m.Present = false
	})
}

// ClearIf clears the message only if it is still the one identified by
// version and is present. It reports whether it cleared.
func (s *Store) ClearIf(version uint64) bool {
	s.mu.Lock()
	if s.current.Version != version || !s.current.Present {
		s.mu.Unlock()
		return false
	}
	s.current.Version++
	s.current.Text = ""
	s.current.Present = false
	msg := s.current
	s.mu.Unlock()

	s.listeners.Broadcast(msg)
	return true
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l events.Listener[Message]) func() {
	return s.listeners.Subscribe(l)
}

// SubscribeFunc is Subscribe for plain functions.
func (s *Store) SubscribeFunc(fn func(Message)) func() {
	return s.listeners.Subscribe(events.ListenerFunc[Message](fn))
}

func (s *Store) write(fn func(*Message)) {
	s.mu.Lock()
	fn(&s.current)
	s.current.Version++
	msg := s.current
	s.mu.Unlock()

	s.listeners.Broadcast(msg)
}
