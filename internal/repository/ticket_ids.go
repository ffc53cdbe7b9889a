package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

const (
	ticketIDPrefix = "T-"
	ticketIDFloor  = 1000
)

// NextTicketID returns "T-<n+1>" where n is the largest numeric suffix among
// ids shaped "T-<digits>", or 1000 when there is none. Other ids are ignored.
func NextTicketID(tickets []domain.Ticket) string {
	highest := ticketIDFloor
	for i := range tickets {
		n, ok := parseTicketNumber(tickets[i].ID)
		if ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%d", ticketIDPrefix, highest+1)
}

func parseTicketNumber(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, ticketIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
