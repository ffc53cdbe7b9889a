// Package repository derives the visible ticket list from the raw ticket
// collection and the current filter selection.
package repository

import (
	"slices"
	"sort"
	"strings"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// TicketFilter captures the facet, search and sort selection.
type TicketFilter struct {
	Status     domain.StatusFilter
	SearchTerm string
	Tags       []string
	Priorities []domain.TicketPriority
	Assignees  []string
	SortBy     domain.SortOption
}

// ListWithFilter returns the tickets that survive every active facet, in
// sort order. It is pure: tickets is not modified and equal inputs give
// equal outputs. Facets are AND-combined; values inside one facet are
// OR-combined. The sort is stable, so ties keep input order.
func ListWithFilter(tickets []domain.Ticket, filter TicketFilter) []domain.Ticket {
	search := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	result := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		ticket := &tickets[i]
		if filter.Status != "" && filter.Status != domain.StatusFilterAll &&
			ticket.Status != domain.TicketStatus(filter.Status) {
			continue
		}
		if search != "" && !matchesSearch(ticket, search) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(ticket, filter.Tags) {
			continue
		}
		if len(filter.Priorities) > 0 && !slices.Contains(filter.Priorities, ticket.Priority) {
			continue
		}
		if len(filter.Assignees) > 0 && !matchesAssignee(ticket, filter.Assignees) {
			continue
		}
		result = append(result, ticket.Clone())
	}

	sort.SliceStable(result, less(result, filter.SortBy))
	return result
}

// BadgeCount is the number of selected facet values. Search and status are
// not counted.
func BadgeCount(filter TicketFilter) int {
	return len(filter.Tags) + len(filter.Priorities) + len(filter.Assignees)
}

// HasActiveFilters reports whether anything narrows the list.
func HasActiveFilters(filter TicketFilter) bool {
	return strings.TrimSpace(filter.SearchTerm) != "" ||
		(filter.Status != "" && filter.Status != domain.StatusFilterAll) ||
		BadgeCount(filter) > 0
}

// OpenCount counts tickets that are not ended.
func OpenCount(tickets []domain.Ticket) int {
	n := 0
	for i := range tickets {
		if tickets[i].Status != domain.TicketStatusEnded {
			n++
		}
	}
	return n
}

func matchesSearch(ticket *domain.Ticket, lower string) bool {
	return strings.Contains(strings.ToLower(ticket.ID), lower) ||
		strings.Contains(strings.ToLower(ticket.Title), lower) ||
		strings.Contains(strings.ToLower(ticket.Requester), lower)
}

func hasAnyTag(ticket *domain.Ticket, selected []string) bool {
	for _, tag := range ticket.Tags {
		if slices.Contains(selected, tag) {
			return true
		}
	}
	return false
}

func matchesAssignee(ticket *domain.Ticket, selected []string) bool {
	if ticket.IsUnassigned() {
		return slices.Contains(selected, domain.UnassignedMarker)
	}
	return slices.Contains(selected, *ticket.Assignee)
}

func less(tickets []domain.Ticket, sortBy domain.SortOption) func(i, j int) bool {
	switch sortBy {
	case domain.SortOldest:
		return func(i, j int) bool { return tickets[i].CreatedAt < tickets[j].CreatedAt }
	case domain.SortPriorityHigh:
		return func(i, j int) bool { return tickets[i].Priority.Rank() > tickets[j].Priority.Rank() }
	case domain.SortPriorityLow:
		return func(i, j int) bool { return tickets[i].Priority.Rank() < tickets[j].Priority.Rank() }
	default:
		return func(i, j int) bool { return tickets[i].CreatedAt > tickets[j].CreatedAt }
	}
}
