package service

import (
	"github.com/spec-kit/ticket-triage/internal/domain"
)

// ViewModel is everything the presentation layer renders, derived from one
// store snapshot plus the current toast.
type ViewModel struct {
	Version          uint64                  `json:"version"`
	Tickets          []domain.Ticket         `json:"tickets"`
	TotalCount       int                     `json:"totalCount"`
	OpenCount        int                     `json:"openCount"`
	FilterBadgeCount int                     `json:"filterBadgeCount"`
	HasActiveFilters bool                    `json:"hasActiveFilters"`
	StatusFilter     domain.StatusFilter     `json:"statusFilter"`
	SearchTerm       string                  `json:"searchTerm"`
	TagFilters       []string                `json:"tagFilters"`
	PriorityFilters  []domain.TicketPriority `json:"priorityFilters"`
	AssigneeFilters  []string                `json:"assigneeFilters"`
	SortBy           domain.SortOption       `json:"sortBy"`
	SelectedTicket   *domain.Ticket          `json:"selectedTicket"`
	IsModalOpen      bool                    `json:"isModalOpen"`
	Toast            *string                 `json:"toast"`
	CurrentTime      int64                   `json:"currentTime"`
}

// ViewOptions are the fixed vocabularies offered by the toolbar and forms.
type ViewOptions struct {
	TeamMembers     []string                `json:"teamMembers"`
	TagOptions      []string                `json:"tagOptions"`
	PriorityOptions []domain.TicketPriority `json:"priorityOptions"`
	StatusOptions   []domain.TicketStatus   `json:"statusOptions"`
	SortOptions     []domain.SortOption     `json:"sortOptions"`
}

// Options returns copies of the fixed vocabularies in display order.
func Options() ViewOptions {
	return ViewOptions{
		TeamMembers:     append([]string(nil), domain.TeamMembers...),
		TagOptions:      append([]string(nil), domain.TagOptions...),
		PriorityOptions: append([]domain.TicketPriority(nil), domain.Priorities...),
		StatusOptions:   append([]domain.TicketStatus(nil), domain.Statuses...),
		SortOptions: []domain.SortOption{
			domain.SortNewest,
			domain.SortOldest,
			domain.SortPriorityHigh,
			domain.SortPriorityLow,
		},
	}
}
