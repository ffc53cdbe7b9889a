package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/clock"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/repository"
	"github.com/spec-kit/ticket-triage/internal/store"
	"github.com/spec-kit/ticket-triage/internal/toast"
)

var (
	// ErrTicketNotFound is returned by ticket updates whose id matches no
	// ticket. The store has still been rewritten and has notified.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrUnknownAssignee is returned in strict mode when an assignee is not
	// on the team roster. Nothing is written in that case.
	ErrUnknownAssignee = errors.New("assignee is not a team member")
)

// ViewService adapts the ticket and toast stores into the view model the
// presentation layer renders, and exposes every user intent as a method.
type ViewService struct {
	tickets        *store.TicketStore
	toasts         *toast.Store
	clock          clock.Clock
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	metrics        *observability.Metrics
	strictAssignee bool

	mu      sync.RWMutex
	current ViewModel
	views   *events.Registry[ViewModel]
	detach  []func()
}

// ViewDependencies bundles collaborators for the view service.
type ViewDependencies struct {
	Tickets        *store.TicketStore
	Toasts         *toast.Store
	Clock          clock.Clock
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	StrictAssignee bool
}

// NewTicketInput describes ticket creation payload.
type NewTicketInput struct {
	Title       string
	Requester   string
	Email       string
	Priority    domain.TicketPriority
	Description string
}

// MissingFields lists required fields left blank.
func (in NewTicketInput) MissingFields() []string {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"title", in.Title},
		{"requester", in.Requester},
		{"email", in.Email},
		{"description", in.Description},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// NewViewService subscribes once to each store and keeps a derived view
// model current. Call Close on teardown.
func NewViewService(deps ViewDependencies) *ViewService {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &ViewService{
		tickets:        deps.Tickets,
		toasts:         deps.Toasts,
		clock:          deps.Clock,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		metrics:        deps.Metrics,
		strictAssignee: deps.StrictAssignee,
		views:          events.NewRegistry[ViewModel](),
	}
	s.current = derive(deps.Tickets.Snapshot(), toastText(deps.Toasts.Current()))
	s.detach = []func(){
		deps.Tickets.SubscribeFunc(s.onStoreChange),
		deps.Toasts.SubscribeFunc(s.onToastChange),
	}
	return s
}

// Close detaches the service from its stores.
func (s *ViewService) Close() {
	for _, detach := range s.detach {
		detach()
	}
}

// View returns the latest view model. Callers must treat it as read-only.
func (s *ViewService) View() ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers l for view model updates.
func (s *ViewService) Subscribe(l events.Listener[ViewModel]) func() {
	return s.views.Subscribe(l)
}

// SubscribeFunc is Subscribe for plain functions.
func (s *ViewService) SubscribeFunc(fn func(ViewModel)) func() {
	return s.views.Subscribe(events.ListenerFunc[ViewModel](fn))
}

// Ticket looks a ticket up in the full collection.
func (s *ViewService) Ticket(id string) (domain.Ticket, error) {
	for _, ticket := range s.tickets.Tickets() {
		if ticket.ID == id {
			return ticket, nil
		}
	}
	return domain.Ticket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
}

func (s *ViewService) onStoreChange(snap store.Snapshot) {
	s.metrics.RecordNotification()

	s.mu.Lock()
	if snap.Version < s.current.Version {
		s.mu.Unlock()
		return
	}
	view := derive(snap, s.current.Toast)
	s.current = view
	s.mu.Unlock()

	s.metrics.RecordView(len(view.Tickets), view.OpenCount)
	s.views.Broadcast(view)
}

func (s *ViewService) onToastChange(msg toast.Message) {
	s.mu.Lock()
	view := s.current
	view.Toast = toastText(msg)
	s.current = view
	s.mu.Unlock()

	s.views.Broadcast(view)
}

func derive(snap store.Snapshot, toastMessage *string) ViewModel {
	st := snap.State
	filter := repository.TicketFilter{
		Status:     st.StatusFilter,
		SearchTerm: st.SearchTerm,
		Tags:       st.TagFilters,
		Priorities: st.PriorityFilters,
		Assignees:  st.AssigneeFilters,
		SortBy:     st.SortBy,
	}

	var selected *domain.Ticket
	if st.SelectedTicketID != nil {
		for i := range st.Tickets {
			if st.Tickets[i].ID == *st.SelectedTicketID {
				ticket := st.Tickets[i]
				selected = &ticket
				break
			}
		}
	}

	return ViewModel{
		Version:          snap.Version,
		Tickets:          repository.ListWithFilter(st.Tickets, filter),
		TotalCount:       len(st.Tickets),
		OpenCount:        repository.OpenCount(st.Tickets),
		FilterBadgeCount: repository.BadgeCount(filter),
		HasActiveFilters: repository.HasActiveFilters(filter),
		StatusFilter:     st.StatusFilter,
		SearchTerm:       st.SearchTerm,
		TagFilters:       nonNil(st.TagFilters),
		PriorityFilters:  nonNil(st.PriorityFilters),
		AssigneeFilters:  nonNil(st.AssigneeFilters),
		SortBy:           st.SortBy,
		SelectedTicket:   selected,
		IsModalOpen:      st.IsModalOpen,
		Toast:            toastMessage,
		CurrentTime:      st.CurrentTime,
	}
}

func toastText(msg toast.Message) *string {
	if !msg.Present {
		return nil
	}
	text := msg.Text
	return &text
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

// UpdateStatus sets the status of ticket id.
func (s *ViewService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	var previous domain.TicketStatus
	found := s.updateTicket(id, func(t *domain.Ticket) {
		previous = t.Status
		t.Status = status
	})
	s.metrics.RecordMutation("update_status")
	if !found {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: id,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: previous,
			NewStatus: status,
		},
	})
	return nil
}

// UpdatePriority sets the priority of ticket id.
func (s *ViewService) UpdatePriority(ctx context.Context, id string, priority domain.TicketPriority) error {
	var previous domain.TicketPriority
	found := s.updateTicket(id, func(t *domain.Ticket) {
		previous = t.Priority
		t.Priority = priority
	})
	s.metrics.RecordMutation("update_priority")
	if !found {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: id,
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: previous,
			NewPriority: priority,
		},
	})
	return nil
}

// UpdateAssignee assigns ticket id, or unassigns it when assignee is nil or
// empty. The roster is only checked in strict mode.
func (s *ViewService) UpdateAssignee(ctx context.Context, id string, assignee *string) error {
	var next *string
	if assignee != nil && strings.TrimSpace(*assignee) != "" {
		next = domain.StringPtr(*assignee)
	}
	if s.strictAssignee && next != nil && !domain.IsTeamMember(*next) {
		return fmt.Errorf("%w: %s", ErrUnknownAssignee, *next)
	}

	var previous *string
	found := s.updateTicket(id, func(t *domain.Ticket) {
		previous = t.Assignee
		if next != nil {
			t.Assignee = domain.StringPtr(*next)
		} else {
			t.Assignee = nil
		}
	})
	s.metrics.RecordMutation("update_assignee")
	if !found {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: id,
		Payload: events.TicketAssignedPayload{
			OldAssignee: previous,
			NewAssignee: next,
		},
	})
	return nil
}

// updateTicket writes a new collection in which ticket id has been passed
// through updater. The collection is written, and subscribers notified,
// even when no ticket matches.
func (s *ViewService) updateTicket(id string, updater func(*domain.Ticket)) bool {
	found := false
	s.tickets.Update(func(st *store.State) {
		next := make([]domain.Ticket, len(st.Tickets))
		for i, ticket := range st.Tickets {
			if ticket.ID == id {
				ticket = ticket.Clone()
				updater(&ticket)
				found = true
			}
			next[i] = ticket
		}
		st.Tickets = next
	})
	return found
}

// CreateTicket prepends a new queued ticket with the next free id and
// returns it. An empty priority defaults to normal.
func (s *ViewService) CreateTicket(ctx context.Context, input NewTicketInput) domain.Ticket {
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityNormal
	}
	createdAt := s.clock.Now().UnixMilli()

	var created domain.Ticket
	s.tickets.Update(func(st *store.State) {
		created = domain.Ticket{
			ID:          repository.NextTicketID(st.Tickets),
			Title:       input.Title,
			Description: input.Description,
			Status:      domain.TicketStatusQueued,
			Priority:    priority,
			Requester:   input.Requester,
			Email:       input.Email,
			CreatedAt:   createdAt,
			Tags:        slices.Clone(domain.DefaultTicketTags),
			Messages:    []domain.TicketMessage{},
		}
		next := make([]domain.Ticket, 0, len(st.Tickets)+1)
		next = append(next, created.Clone())
		st.Tickets = append(next, st.Tickets...)
	})
	s.metrics.RecordMutation("create_ticket")

	s.logger.Info("ticket created", zap.String("ticket_id", created.ID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: created.ID,
		Payload: events.TicketCreatedPayload{
			Priority:  created.Priority,
			Title:     created.Title,
			Requester: created.Requester,
		},
	})
	return created
}

// SetStatusFilter selects a status, or domain.StatusFilterAll.
func (s *ViewService) SetStatusFilter(filter domain.StatusFilter) {
	s.tickets.SetStatusFilter(filter)
	s.metrics.RecordMutation("set_status_filter")
}

// SetSearchTerm replaces the free-text search.
func (s *ViewService) SetSearchTerm(term string) {
	s.tickets.SetSearchTerm(term)
	s.metrics.RecordMutation("set_search_term")
}

// SetSortBy selects the ordering of the visible list.
func (s *ViewService) SetSortBy(sortBy domain.SortOption) {
	s.tickets.SetSortBy(sortBy)
	s.metrics.RecordMutation("set_sort")
}

// ToggleTagFilter adds tag to the tag facet, or removes it if present.
func (s *ViewService) ToggleTagFilter(tag string) {
	s.tickets.Update(func(st *store.State) { st.TagFilters = toggle(st.TagFilters, tag) })
	s.metrics.RecordMutation("toggle_tag_filter")
}

// TogglePriorityFilter adds or removes priority from the priority facet.
func (s *ViewService) TogglePriorityFilter(priority domain.TicketPriority) {
	s.tickets.Update(func(st *store.State) { st.PriorityFilters = toggle(st.PriorityFilters, priority) })
	s.metrics.RecordMutation("toggle_priority_filter")
}

// ToggleAssigneeFilter adds or removes assignee (or the unassigned marker)
// from the assignee facet.
func (s *ViewService) ToggleAssigneeFilter(assignee string) {
	s.tickets.Update(func(st *store.State) { st.AssigneeFilters = toggle(st.AssigneeFilters, assignee) })
	s.metrics.RecordMutation("toggle_assignee_filter")
}

// HandleTagShortcut ensures tag is selected. It never deselects.
func (s *ViewService) HandleTagShortcut(tag string) {
	s.tickets.Update(func(st *store.State) {
		if !slices.Contains(st.TagFilters, tag) {
			st.TagFilters = append(slices.Clone(st.TagFilters), tag)
		}
	})
	s.metrics.RecordMutation("tag_shortcut")
}

// ClearAllFilters resets status, search and every facet in one write. Sort,
// selection and modal state are kept.
func (s *ViewService) ClearAllFilters(ctx context.Context) {
	s.tickets.Update(func(st *store.State) {
		st.StatusFilter = domain.StatusFilterAll
		st.SearchTerm = ""
		st.TagFilters = []string{}
		st.PriorityFilters = []domain.TicketPriority{}
		st.AssigneeFilters = []string{}
	})
	s.metrics.RecordMutation("clear_filters")
	s.publishEvent(ctx, events.Event{Type: events.EventFiltersCleared})
}

// OpenTicketDetails selects ticket id for the details panel.
func (s *ViewService) OpenTicketDetails(id string) {
	s.tickets.SetSelectedTicketID(&id)
	s.metrics.RecordMutation("open_details")
}

// CloseTicketDetails clears the selection.
func (s *ViewService) CloseTicketDetails() {
	s.tickets.SetSelectedTicketID(nil)
	s.metrics.RecordMutation("close_details")
}

// OpenNewTicketModal shows the create-ticket dialog.
func (s *ViewService) OpenNewTicketModal() {
	s.tickets.SetIsModalOpen(true)
	s.metrics.RecordMutation("open_modal")
}

// CloseNewTicketModal hides the create-ticket dialog.
func (s *ViewService) CloseNewTicketModal() {
	s.tickets.SetIsModalOpen(false)
	s.metrics.RecordMutation("close_modal")
}

// PushToast shows text, replacing any pending toast.
func (s *ViewService) PushToast(text string) {
	s.toasts.Set(text)
	s.metrics.RecordToast()
}

// DismissToast hides the current toast.
func (s *ViewService) DismissToast() {
	s.toasts.Clear()
}

// Tick refreshes the current time used for relative ages.
func (s *ViewService) Tick() {
	s.tickets.SetCurrentTime(s.clock.Now())
}

func (s *ViewService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func toggle[T comparable](values []T, value T) []T {
	if slices.Contains(values, value) {
		out := make([]T, 0, len(values))
		for _, v := range values {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	}
	return append(slices.Clone(values), value)
}
