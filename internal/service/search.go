package service

import (
	"strings"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// FilterTickets returns the tickets whose key or summary contains query,
// compared case-insensitively. Order is preserved and the input is not modified.
// An empty query matches every ticket.
func FilterTickets(tickets []domain.Ticket, query string) []domain.Ticket {
	needle := strings.ToLower(query)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if needle == "" ||
			strings.Contains(strings.ToLower(ticket.Key), needle) ||
			strings.Contains(strings.ToLower(ticket.Summary), needle) {
			out = append(out, ticket)
		}
	}
	return out
}
