package domain

import "slices"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusQueued    TicketStatus = "queued"
	TicketStatusActive    TicketStatus = "active"
	TicketStatusEscalated TicketStatus = "escalated"
	TicketStatusEnded     TicketStatus = "ended"
)

// TicketPriority enumerates triage urgency.
type TicketPriority string

const (
	TicketPriorityCritical TicketPriority = "critical"
	TicketPriorityUrgent   TicketPriority = "urgent"
	TicketPriorityNormal   TicketPriority = "normal"
	TicketPriorityLow      TicketPriority = "low"
)

// Rank orders priorities from low (1) to critical (4). Unknown values rank 0.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityCritical:
		return 4
	case TicketPriorityUrgent:
		return 3
	case TicketPriorityNormal:
		return 2
	case TicketPriorityLow:
		return 1
	default:
		return 0
	}
}

// Ticket is the aggregate rendered by the triage view.
type Ticket struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      TicketStatus    `json:"status"`
	Priority    TicketPriority  `json:"priority"`
	Requester   string          `json:"requester"`
	Email       string          `json:"email"`
	Assignee    *string         `json:"assignee"`
	CreatedAt   int64           `json:"createdAt"`
	Tags        []string        `json:"tags"`
	Messages    []TicketMessage `json:"messages"`
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Ticket) Clone() Ticket {
	out := t
	if t.Assignee != nil {
		assignee := *t.Assignee
		out.Assignee = &assignee
	}
	out.Tags = slices.Clone(t.Tags)
	out.Messages = slices.Clone(t.Messages)
	return out
}

// IsUnassigned reports whether the ticket has no assignee.
func (t Ticket) IsUnassigned() bool {
	return t.Assignee == nil || *t.Assignee == ""
}

// CloneTickets deep-copies a ticket slice.
func CloneTickets(tickets []Ticket) []Ticket {
	if tickets == nil {
		return nil
	}
	out := make([]Ticket, len(tickets))
	for i := range tickets {
		out[i] = tickets[i].Clone()
	}
	return out
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}
