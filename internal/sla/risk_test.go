package sla

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func ticketAt(status domain.TicketStatus, priority domain.TicketPriority, escalation int, created, deadline time.Time) domain.Ticket {
	return domain.Ticket{
		CustomerID:      "cust-1",
		TicketID:        "tck-1",
		Status:          status,
		Priority:        priority,
		EscalationLevel: escalation,
		CreatedAt:       created,
		SLADeadline:     deadline,
	}
}

func TestRiskScoreBounds(t *testing.T) {
	model := NewRiskModel()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(4 * time.Hour)

	statuses := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusPendingCustomer,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
		domain.TicketStatusCancelled,
	}
	priorities := []domain.TicketPriority{
		domain.TicketPriorityLow,
		domain.TicketPriorityMedium,
		domain.TicketPriorityHigh,
		domain.TicketPriorityCritical,
	}
	offsets := []time.Duration{-time.Hour, 0, time.Hour, 3 * time.Hour, 4 * time.Hour, 10 * time.Hour}

	for _, status := range statuses {
		for _, priority := range priorities {
			for _, escalation := range []int{0, 1, 5} {
				for _, offset := range offsets {
					ticket := ticketAt(status, priority, escalation, created, deadline)
					score := model.Score(ticket, created.Add(offset))
					if score < 0 || score > 1 {
						t.Fatalf("score out of range: %v (status=%s priority=%s esc=%d offset=%v)",
							score, status, priority, escalation, offset)
					}
				}
			}
		}
	}
}

func TestRiskScoreResolvedAlwaysZero(t *testing.T) {
	model := NewRiskModel()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(time.Hour)

	for _, status := range []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed} {
		// well past the deadline
		ticket := ticketAt(status, domain.TicketPriorityCritical, 3, created, deadline)
		if got := model.Score(ticket, deadline.Add(48*time.Hour)); got != 0 {
			t.Fatalf("Score(%s)=%v, want 0", status, got)
		}
	}
}

func TestRiskScoreOverdueIsOne(t *testing.T) {
	model := NewRiskModel()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(time.Hour)

	ticket := ticketAt(domain.TicketStatusOpen, domain.TicketPriorityLow, 0, created, deadline)
	if got := model.Score(ticket, deadline); got != 1 {
		t.Fatalf("Score at deadline=%v, want 1", got)
	}
	if got := model.Score(ticket, deadline.Add(time.Minute)); got != 1 {
		t.Fatalf("Score past deadline=%v, want 1", got)
	}
}

func TestRiskScoreFactors(t *testing.T) {
	model := NewRiskModel()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(2 * time.Hour)
	now := created.Add(time.Hour) // progress 0.5, base 0.5^1.5

	base := 0.3535533905932738

	cases := []struct {
		name       string
		status     domain.TicketStatus
		priority   domain.TicketPriority
		escalation int
		want       float64
	}{
		{"in_progress medium", domain.TicketStatusInProgress, domain.TicketPriorityMedium, 0, base},
		{"open boost", domain.TicketStatusOpen, domain.TicketPriorityMedium, 0, base * 1.2},
		{"pending damping", domain.TicketStatusPendingCustomer, domain.TicketPriorityMedium, 0, base * 0.7},
		{"critical priority", domain.TicketStatusInProgress, domain.TicketPriorityCritical, 0, base * 1.3},
		{"low priority", domain.TicketStatusInProgress, domain.TicketPriorityLow, 0, base * 0.8},
		{"escalated twice", domain.TicketStatusInProgress, domain.TicketPriorityMedium, 2, base * 1.4},
	}

	for _, tt := range cases {
		ticket := ticketAt(tt.status, tt.priority, tt.escalation, created, deadline)
		got := model.Score(ticket, now)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s: Score=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	model := NewRiskModel()
	cases := []struct {
		score float64
		want  domain.RiskLevel
	}{
		{0.0, domain.RiskLevelLow},
		{0.39, domain.RiskLevelLow},
		{0.4, domain.RiskLevelMedium},
		{0.69, domain.RiskLevelMedium},
		{0.7, domain.RiskLevelHigh},
		{0.89, domain.RiskLevelHigh},
		{0.9, domain.RiskLevelCritical},
		{1.0, domain.RiskLevelCritical},
	}
	for _, tt := range cases {
		if got := model.Level(tt.score); got != tt.want {
			t.Fatalf("Level(%v)=%s, want %s", tt.score, got, tt.want)
		}
	}
}
