// Package store holds the authoritative ticket and filter state of the
// triage view and broadcasts every change to its subscribers.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/spec-kit/ticket-triage/internal/clock"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

// State is the full mutable state of the triage view.
type State struct {
	Tickets          []domain.Ticket
	CurrentTime      int64
	StatusFilter     domain.StatusFilter
	SearchTerm       string
	TagFilters       []string
	PriorityFilters  []domain.TicketPriority
	AssigneeFilters  []string
	SortBy           domain.SortOption
	SelectedTicketID *string
	IsModalOpen      bool
}

// Clone deep-copies the state.
func (s State) Clone() State {
	out := s
	out.Tickets = domain.CloneTickets(s.Tickets)
	out.TagFilters = slices.Clone(s.TagFilters)
	out.PriorityFilters = slices.Clone(s.PriorityFilters)
	out.AssigneeFilters = slices.Clone(s.AssigneeFilters)
	if s.SelectedTicketID != nil {
		id := *s.SelectedTicketID
		out.SelectedTicketID = &id
	}
	return out
}

// Snapshot is delivered to subscribers after every write. Version increases
// by one per write, so a consumer can drop snapshots older than one it has
// already seen.
type Snapshot struct {
	Version uint64
	State   State
}

// TicketStore is the single writer of ticket and filter state. Every setter
// replaces one slice of state and triggers exactly one notification, even
// when the value did not change.
type TicketStore struct {
	mu        sync.RWMutex
	state     State
	version   uint64
	listeners *events.Registry[Snapshot]
}

// New builds a store seeded with initial tickets. currentTime starts at
// clk.Now().
func New(initial []domain.Ticket, clk clock.Clock) *TicketStore {
	if clk == nil {
		clk = clock.Real()
	}
	return &TicketStore{
		state: State{
			Tickets:      domain.CloneTickets(initial),
			CurrentTime:  clk.Now().UnixMilli(),
			StatusFilter: domain.StatusFilterAll,
			SortBy:       domain.SortNewest,
		},
		listeners: events.NewRegistry[Snapshot](),
	}
}

// Subscribe registers l for change notifications and returns its
// unsubscribe func.
func (s *TicketStore) Subscribe(l events.Listener[Snapshot]) func() {
	return s.listeners.Subscribe(l)
}

// SubscribeFunc is Subscribe for plain functions.
func (s *TicketStore) SubscribeFunc(fn func(Snapshot)) func() {
	return s.listeners.Subscribe(events.ListenerFunc[Snapshot](fn))
}

// Snapshot returns a copy of the current state and its version.
func (s *TicketStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Version: s.version, State: s.state.Clone()}
}

// Update applies fn to the state under the write lock and then notifies
// subscribers once. fn must replace slices rather than mutate them in place.
func (s *TicketStore) Update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.version++
	snap := Snapshot{Version: s.version, State: s.state.Clone()}
	s.mu.Unlock()

	s.listeners.Broadcast(snap)
}

func (s *TicketStore) read(fn func(*State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Tickets returns a copy of the full collection.
func (s *TicketStore) Tickets() []domain.Ticket {
	var out []domain.Ticket
	s.read(func(st *State) { out = domain.CloneTickets(st.Tickets) })
	return out
}

// SetTickets replaces the full collection.
func (s *TicketStore) SetTickets(tickets []domain.Ticket) {
	next := domain.CloneTickets(tickets)
	s.Update(func(st *State) { st.Tickets = next })
}

// CurrentTime returns the last refreshed time in ms since epoch.
func (s *TicketStore) CurrentTime() int64 {
	var out int64
	s.read(func(st *State) { out = st.CurrentTime })
	return out
}

// SetCurrentTime records t as the current time.
func (s *TicketStore) SetCurrentTime(t time.Time) {
	ms := t.UnixMilli()
	s.Update(func(st *State) { st.CurrentTime = ms })
}

func (s *TicketStore) StatusFilter() domain.StatusFilter {
	var out domain.StatusFilter
	s.read(func(st *State) { out = st.StatusFilter })
	return out
}

func (s *TicketStore) SetStatusFilter(filter domain.StatusFilter) {
	s.Update(func(st *State) { st.StatusFilter = filter })
}

func (s *TicketStore) SearchTerm() string {
	var out string
	s.read(func(st *State) { out = st.SearchTerm })
	return out
}

func (s *TicketStore) SetSearchTerm(term string) {
	s.Update(func(st *State) { st.SearchTerm = term })
}

func (s *TicketStore) TagFilters() []string {
	var out []string
	s.read(func(st *State) { out = slices.Clone(st.TagFilters) })
	return out
}

func (s *TicketStore) SetTagFilters(tags []string) {
	next := slices.Clone(tags)
	s.Update(func(st *State) { st.TagFilters = next })
}

func (s *TicketStore) PriorityFilters() []domain.TicketPriority {
	var out []domain.TicketPriority
	s.read(func(st *State) { out = slices.Clone(st.PriorityFilters) })
	return out
}

func (s *TicketStore) SetPriorityFilters(priorities []domain.TicketPriority) {
	next := slices.Clone(priorities)
	s.Update(func(st *State) { st.PriorityFilters = next })
}

func (s *TicketStore) AssigneeFilters() []string {
	var out []string
	s.read(func(st *State) { out = slices.Clone(st.AssigneeFilters) })
	return out
}

func (s *TicketStore) SetAssigneeFilters(assignees []string) {
	next := slices.Clone(assignees)
	s.Update(func(st *State) { st.AssigneeFilters = next })
}

func (s *TicketStore) SortBy() domain.SortOption {
	var out domain.SortOption
	s.read(func(st *State) { out = st.SortBy })
	return out
}

func (s *TicketStore) SetSortBy(sortBy domain.SortOption) {
	s.Update(func(st *State) { st.SortBy = sortBy })
}

// SelectedTicketID returns the id shown in the details panel, or nil.
func (s *TicketStore) SelectedTicketID() *string {
	var out *string
	s.read(func(st *State) {
		if st.SelectedTicketID != nil {
			id := *st.SelectedTicketID
			out = &id
		}
	})
	return out
}

// SetSelectedTicketID sets or clears (nil) the selection.
func (s *TicketStore) SetSelectedTicketID(id *string) {
	var next *string
	if id != nil {
		v := *id
		next = &v
	}
	s.Update(func(st *State) { st.SelectedTicketID = next })
}

func (s *TicketStore) IsModalOpen() bool {
	var out bool
	s.read(func(st *State) { out = st.IsModalOpen })
	return out
}

func (s *TicketStore) SetIsModalOpen(open bool) {
	s.Update(func(st *State) { st.IsModalOpen = open })
}
