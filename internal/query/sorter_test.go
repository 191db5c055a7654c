package query

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func TestSortTotalOrderOnEqualCreatedAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		newTicket("b", domain.TicketStatusOpen, created, created.Add(time.Hour)),
		newTicket("c", domain.TicketStatusOpen, created, created.Add(time.Hour)),
		newTicket("a", domain.TicketStatusOpen, created, created.Add(time.Hour)),
	}

	Sort(tickets, domain.SortByCreatedAt, domain.SortDesc)
	if got := ticketIDs(tickets); got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("desc order=%v, want [c b a] by descending identifier", got)
	}

	Sort(tickets, domain.SortByCreatedAt, domain.SortAsc)
	if got := ticketIDs(tickets); got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("asc order=%v, want [a b c]", got)
	}
}

func TestSortByPriority(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mk := func(id string, p domain.TicketPriority) domain.Ticket {
		ticket := newTicket(id, domain.TicketStatusOpen, created, created.Add(time.Hour))
		ticket.Priority = p
		return ticket
	}
	tickets := []domain.Ticket{
		mk("low", domain.TicketPriorityLow),
		mk("crit", domain.TicketPriorityCritical),
		mk("med", domain.TicketPriorityMedium),
		mk("high", domain.TicketPriorityHigh),
	}

	Sort(tickets, domain.SortByPriority, domain.SortDesc)
	want := []string{"crit", "high", "med", "low"}
	for i, id := range ticketIDs(tickets) {
		if id != want[i] {
			t.Fatalf("priority desc order=%v, want %v", ticketIDs(tickets), want)
		}
	}
}

func TestSortPriorityTieFallsBackToCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := newTicket("older", domain.TicketStatusOpen, base, base.Add(time.Hour))
	newer := newTicket("newer", domain.TicketStatusOpen, base.Add(time.Minute), base.Add(time.Hour))
	tickets := []domain.Ticket{older, newer}

	// Same priority; descending order should put the newer ticket first.
	Sort(tickets, domain.SortByPriority, domain.SortDesc)
	if tickets[0].TicketID != "newer" {
		t.Fatalf("order=%v, want newer first on createdAt tie-break", ticketIDs(tickets))
	}
}

func TestSortIsIdempotent(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		newTicket("b", domain.TicketStatusOpen, created.Add(time.Minute), created.Add(time.Hour)),
		newTicket("a", domain.TicketStatusOpen, created, created.Add(time.Hour)),
		newTicket("c", domain.TicketStatusOpen, created, created.Add(time.Hour)),
	}

	Sort(tickets, domain.SortByCreatedAt, domain.SortAsc)
	first := ticketIDs(tickets)
	Sort(tickets, domain.SortByCreatedAt, domain.SortAsc)
	second := ticketIDs(tickets)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second sort changed order: %v vs %v", first, second)
		}
	}
}

func TestSortRelevanceIsPassthrough(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		newTicket("z", domain.TicketStatusOpen, created.Add(time.Hour), created.Add(2*time.Hour)),
		newTicket("a", domain.TicketStatusOpen, created, created.Add(time.Hour)),
	}
	Sort(tickets, domain.SortByRelevance, domain.SortDesc)
	if tickets[0].TicketID != "z" || tickets[1].TicketID != "a" {
		t.Fatalf("order=%v, want ranker order preserved", ticketIDs(tickets))
	}
}
