package query

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// priorityRank orders priorities critical > high > medium > low.
var priorityRank = map[domain.TicketPriority]int{
	domain.TicketPriorityCritical: 4,
	domain.TicketPriorityHigh:     3,
	domain.TicketPriorityMedium:   2,
	domain.TicketPriorityLow:      1,
}

// statusRank orders statuses by lifecycle position.
var statusRank = map[domain.TicketStatus]int{
	domain.TicketStatusOpen:            1,
	domain.TicketStatusInProgress:      2,
	domain.TicketStatusPendingCustomer: 3,
	domain.TicketStatusResolved:        4,
	domain.TicketStatusClosed:          5,
	domain.TicketStatusCancelled:       6,
}

// Sort orders the candidate set deterministically. The primary key is the
// requested field; ties fall back to createdAt (unless that already was the
// primary key) and finally to the ticket identifier, guaranteeing a total
// order regardless of field collisions. Descending order negates the whole
// chain, tie-breaks included. Relevance ordering is established by the
// ranker, so SortByRelevance is a passthrough.
func Sort(candidates []domain.Ticket, sortBy domain.SortField, order domain.SortOrder) {
	if sortBy == domain.SortByRelevance {
		return
	}
	descending := order == domain.SortDesc

	sort.SliceStable(candidates, func(i, j int) bool {
		cmp := compareTickets(candidates[i], candidates[j], sortBy)
		if descending {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compareTickets(a, b domain.Ticket, sortBy domain.SortField) int {
	if cmp := comparePrimary(a, b, sortBy); cmp != 0 {
		return cmp
	}
	if sortBy != domain.SortByCreatedAt {
		if cmp := compareTime(a.CreatedAt, b.CreatedAt); cmp != 0 {
			return cmp
		}
	}
	return strings.Compare(a.Key(), b.Key())
}

func comparePrimary(a, b domain.Ticket, sortBy domain.SortField) int {
	switch sortBy {
	case domain.SortByUpdatedAt:
		return compareTime(a.UpdatedAt, b.UpdatedAt)
	case domain.SortByPriority:
		return priorityRank[a.Priority] - priorityRank[b.Priority]
	case domain.SortBySLADeadline:
		return compareTime(a.SLADeadline, b.SLADeadline)
	case domain.SortByStatus:
		return statusRank[a.Status] - statusRank[b.Status]
	case domain.SortByCustomerName:
		return strings.Compare(a.CustomerName, b.CustomerName)
	case domain.SortByEscalationLevel:
		return a.EscalationLevel - b.EscalationLevel
	case domain.SortByTimeSpent:
		return a.TimeSpentMinutes - b.TimeSpentMinutes
	default:
		return compareTime(a.CreatedAt, b.CreatedAt)
	}
}

func compareTime(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}
