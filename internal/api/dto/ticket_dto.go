package dto

import (
	"github.com/spec-kit/ticket-triage/internal/domain"
)

// CreateTicketRequest payload. Priority may be omitted and defaults to normal.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Requester   string `json:"requester"`
	Email       string `json:"email"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

// UpdateAssigneeRequest payload. Null, "" or "unassigned" clears the assignee.
type UpdateAssigneeRequest struct {
	Assignee *string `json:"assignee"`
}

// TicketResponse is a ticket plus its age relative to the view's current time.
type TicketResponse struct {
	domain.Ticket
	Age string `json:"age"`
}

// NewTicketResponse renders ticket relative to now (ms since epoch).
func NewTicketResponse(ticket domain.Ticket, now int64) TicketResponse {
	return TicketResponse{Ticket: ticket, Age: domain.FormatRelative(ticket.CreatedAt, now)}
}
