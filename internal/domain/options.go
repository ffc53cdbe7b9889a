package domain

import (
	"fmt"
	"strings"
)

// StatusFilter is a TicketStatus or StatusFilterAll.
type StatusFilter string

// StatusFilterAll disables status filtering.
const StatusFilterAll StatusFilter = "all"

// SortOption selects the ordering of the visible ticket list.
type SortOption string

const (
	SortDefault      SortOption = ""
	SortNewest       SortOption = "newest"
	SortOldest       SortOption = "oldest"
	SortPriorityHigh SortOption = "priority-high"
	SortPriorityLow  SortOption = "priority-low"
)

// Statuses lists ticket statuses in display order.
var Statuses = []TicketStatus{
	TicketStatusQueued,
	TicketStatusActive,
	TicketStatusEscalated,
	TicketStatusEnded,
}

// Priorities lists ticket priorities in display order.
var Priorities = []TicketPriority{
	TicketPriorityCritical,
	TicketPriorityUrgent,
	TicketPriorityNormal,
	TicketPriorityLow,
}

// TagOptions is the fixed tag vocabulary offered by the toolbar.
var TagOptions = []string{
	"Bug",
	"Feature",
	"Support",
	"Billing",
	"Mobile",
	"Critical",
}

// DefaultTicketTags are attached to every newly created ticket.
var DefaultTicketTags = []string{"Support"}

// ParseStatus validates a status string.
func ParseStatus(raw string) (TicketStatus, error) {
	value := TicketStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range Statuses {
		if status == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// ParsePriority validates a priority string.
func ParsePriority(raw string) (TicketPriority, error) {
	value := TicketPriority(strings.ToLower(strings.TrimSpace(raw)))
	for _, priority := range Priorities {
		if priority == value {
			return priority, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", raw)
}

// ParseStatusFilter accepts "all" or any status.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	if strings.EqualFold(strings.TrimSpace(raw), string(StatusFilterAll)) {
		return StatusFilterAll, nil
	}
	status, err := ParseStatus(raw)
	if err != nil {
		return "", err
	}
	return StatusFilter(status), nil
}

// ParseSortOption validates a sort option. The empty string is accepted and
// behaves like SortNewest.
func ParseSortOption(raw string) (SortOption, error) {
	switch opt := SortOption(strings.ToLower(strings.TrimSpace(raw))); opt {
	case SortDefault, SortNewest, SortOldest, SortPriorityHigh, SortPriorityLow:
		return opt, nil
	default:
		return "", fmt.Errorf("unknown sort option %q", raw)
	}
}
