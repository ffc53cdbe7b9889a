package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func facetFixture() []domain.Ticket {
	return []domain.Ticket{
		{ID: "T-1", Title: "Crash on start", Requester: "Ann", Tags: []string{"Bug"}, Priority: domain.TicketPriorityUrgent, CreatedAt: 100, Status: domain.TicketStatusQueued},
		{ID: "T-2", Title: "Dark mode", Requester: "Ben", Tags: []string{"Feature"}, Priority: domain.TicketPriorityLow, CreatedAt: 300, Status: domain.TicketStatusActive, Assignee: domain.StringPtr("Mike Chen")},
		{ID: "T-3", Title: "Export broken", Requester: "Cleo", Tags: []string{"Bug", "Feature"}, Priority: domain.TicketPriorityNormal, CreatedAt: 200, Status: domain.TicketStatusEnded, Assignee: domain.StringPtr("AI Bot")},
	}
}

func TestTagFacetIsOrWithin(t *testing.T) {
	tickets := facetFixture()

	got := ListWithFilter(tickets, TicketFilter{Tags: []string{"Bug"}, SortBy: domain.SortOldest})
	assert.Equal(t, []string{"T-1", "T-3"}, ids(got))

	got = ListWithFilter(tickets, TicketFilter{Tags: []string{"Bug", "Feature"}, SortBy: domain.SortOldest})
	assert.Equal(t, []string{"T-1", "T-3", "T-2"}, ids(got))
}

func TestFacetsAreAndAcross(t *testing.T) {
	got := ListWithFilter(facetFixture(), TicketFilter{
		Tags:       []string{"Bug"},
		Priorities: []domain.TicketPriority{domain.TicketPriorityUrgent},
	})
	assert.Equal(t, []string{"T-1"}, ids(got))
}

func TestStatusFilter(t *testing.T) {
	tickets := facetFixture()

	got := ListWithFilter(tickets, TicketFilter{Status: domain.StatusFilter(domain.TicketStatusActive)})
	assert.Equal(t, []string{"T-2"}, ids(got))

	got = ListWithFilter(tickets, TicketFilter{Status: domain.StatusFilterAll})
	assert.Len(t, got, 3)
}

func TestSearchMatchesIDTitleRequesterCaseInsensitive(t *testing.T) {
	tickets := facetFixture()

	assert.Equal(t, []string{"T-2"}, ids(ListWithFilter(tickets, TicketFilter{SearchTerm: "  DARK "})))
	assert.Equal(t, []string{"T-3"}, ids(ListWithFilter(tickets, TicketFilter{SearchTerm: "cleo"})))
	assert.Equal(t, []string{"T-1"}, ids(ListWithFilter(tickets, TicketFilter{SearchTerm: "t-1"})))
	assert.Empty(t, ListWithFilter(tickets, TicketFilter{SearchTerm: "nothing matches"}))
	assert.Len(t, ListWithFilter(tickets, TicketFilter{SearchTerm: "   "}), 3)
}

func TestSearchMatchesTrimmedTerm(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "T-1", Title: "Login failure", Requester: "John Doe"},
		{ID: "T-2", Title: "Dark mode", Requester: "Alex"},
	}
	assert.Equal(t, []string{"T-1"}, ids(ListWithFilter(tickets, TicketFilter{SearchTerm: " doe "})))
	assert.Equal(t, []string{"T-1"}, ids(ListWithFilter(tickets, TicketFilter{SearchTerm: "\tJOHN DOE\n"})))
}

func TestSearchIgnoresDescription(t *testing.T) {
	tickets := []domain.Ticket{{ID: "T-9", Title: "x", Requester: "y", Description: "needle"}}
	assert.Empty(t, ListWithFilter(tickets, TicketFilter{SearchTerm: "needle"}))
}

func TestUnassignedMarker(t *testing.T) {
	tickets := facetFixture()

	got := ListWithFilter(tickets, TicketFilter{Assignees: []string{domain.UnassignedMarker}})
	assert.Equal(t, []string{"T-1"}, ids(got))

	got = ListWithFilter(tickets, TicketFilter{Assignees: []string{"Mike Chen"}})
	assert.Equal(t, []string{"T-2"}, ids(got))

	got = ListWithFilter(tickets, TicketFilter{Assignees: []string{"Mike Chen", domain.UnassignedMarker}, SortBy: domain.SortOldest})
	assert.Equal(t, []string{"T-1", "T-2"}, ids(got))
}

func TestEmptyAssigneeCountsAsUnassigned(t *testing.T) {
	tickets := []domain.Ticket{{ID: "T-5", Assignee: domain.StringPtr("")}}
	assert.Len(t, ListWithFilter(tickets, TicketFilter{Assignees: []string{domain.UnassignedMarker}}), 1)
	assert.Empty(t, ListWithFilter(tickets, TicketFilter{Assignees: []string{""}}))
}

func TestSortOrders(t *testing.T) {
	byTime := []domain.Ticket{
		{ID: "a", CreatedAt: 100},
		{ID: "b", CreatedAt: 300},
		{ID: "c", CreatedAt: 200},
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids(ListWithFilter(byTime, TicketFilter{SortBy: domain.SortOldest})))
	assert.Equal(t, []string{"b", "c", "a"}, ids(ListWithFilter(byTime, TicketFilter{SortBy: domain.SortNewest})))
	assert.Equal(t, []string{"b", "c", "a"}, ids(ListWithFilter(byTime, TicketFilter{SortBy: domain.SortDefault})))

	byPriority := []domain.Ticket{
		{ID: "low", Priority: domain.TicketPriorityLow},
		{ID: "critical", Priority: domain.TicketPriorityCritical},
		{ID: "normal", Priority: domain.TicketPriorityNormal},
	}
	assert.Equal(t, []string{"critical", "normal", "low"}, ids(ListWithFilter(byPriority, TicketFilter{SortBy: domain.SortPriorityHigh})))
	assert.Equal(t, []string{"low", "normal", "critical"}, ids(ListWithFilter(byPriority, TicketFilter{SortBy: domain.SortPriorityLow})))
}

func TestSortIsStableOnTies(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "first", Priority: domain.TicketPriorityUrgent},
		{ID: "second", Priority: domain.TicketPriorityUrgent},
		{ID: "third", Priority: domain.TicketPriorityUrgent},
	}
	got := ListWithFilter(tickets, TicketFilter{SortBy: domain.SortPriorityHigh})
	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

func TestListWithFilterIsPure(t *testing.T) {
	tickets := facetFixture()
	before := domain.CloneTickets(tickets)
	filter := TicketFilter{Tags: []string{"Bug", "Feature"}, SortBy: domain.SortPriorityHigh}

	first := ListWithFilter(tickets, filter)
	second := ListWithFilter(tickets, filter)

	assert.Equal(t, first, second)
	assert.Equal(t, before, tickets, "input collection was reordered or modified")

	first[0].Tags[0] = "Mutated"
	assert.Equal(t, before, tickets, "result shares memory with input")
}

func TestBadgeCountIgnoresSearchAndStatus(t *testing.T) {
	filter := TicketFilter{
		Tags:       []string{"Bug", "Feature"},
		Priorities: []domain.TicketPriority{domain.TicketPriorityLow},
		Assignees:  []string{domain.UnassignedMarker},
	}
	assert.Equal(t, 4, BadgeCount(filter))

	filter.SearchTerm = "anything"
	filter.Status = domain.StatusFilter(domain.TicketStatusEnded)
	assert.Equal(t, 4, BadgeCount(filter))
}

func TestHasActiveFilters(t *testing.T) {
	assert.False(t, HasActiveFilters(TicketFilter{Status: domain.StatusFilterAll, SearchTerm: "  "}))
	assert.True(t, HasActiveFilters(TicketFilter{SearchTerm: "x"}))
	assert.True(t, HasActiveFilters(TicketFilter{Status: domain.StatusFilter(domain.TicketStatusQueued)}))
	assert.True(t, HasActiveFilters(TicketFilter{Tags: []string{"Bug"}}))
}

func TestOpenCount(t *testing.T) {
	assert.Equal(t, 2, OpenCount(facetFixture()))
	assert.Equal(t, 0, OpenCount(nil))
}
