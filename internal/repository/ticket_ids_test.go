package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func withIDs(values ...string) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(values))
	for _, id := range values {
		tickets = append(tickets, domain.Ticket{ID: id})
	}
	return tickets
}

func TestNextTicketID(t *testing.T) {
	cases := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty collection", nil, "T-1001"},
		{"fixture ids", []string{"T-1024", "T-1023", "T-1022", "T-1021", "T-1020"}, "T-1025"},
		{"unordered", []string{"T-1003", "T-1050", "T-1010"}, "T-1051"},
		{"below floor", []string{"T-5", "T-999"}, "T-1001"},
		{"malformed ignored", []string{"T-abc", "X-5000", "T-", "T-1002x", "T-1002"}, "T-1003"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextTicketID(withIDs(tc.ids...)))
		})
	}
}
