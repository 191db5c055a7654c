package sla

import (
	"math"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Status multipliers applied to the elapsed-time base score. Resolved and
// closed tickets carry no breach risk at all; an unlisted status multiplies
// by 1.0.
var statusFactors = map[domain.TicketStatus]float64{
	domain.TicketStatusOpen:            1.2,
	domain.TicketStatusInProgress:      1.0,
	domain.TicketStatusPendingCustomer: 0.7,
}

var priorityFactors = map[domain.TicketPriority]float64{
	domain.TicketPriorityCritical: 1.3,
	domain.TicketPriorityHigh:     1.1,
	domain.TicketPriorityMedium:   1.0,
	domain.TicketPriorityLow:      0.8,
}

const escalationFactorStep = 0.2

// Risk level thresholds for alerting. The search post-filter buckets use a
// different boundary set; the two scales are independent.
const (
	levelCriticalFloor = 0.9
	levelHighFloor     = 0.7
	levelMediumFloor   = 0.4
)

// RiskModel converts a ticket's current state and the clock into a
// continuous [0,1] breach-risk score and a discrete level. It is stateless
// and safe for concurrent use.
type RiskModel struct{}

// NewRiskModel returns the model.
func NewRiskModel() *RiskModel {
	return &RiskModel{}
}

// Score computes the breach-risk score for a ticket at the given instant.
func (m *RiskModel) Score(ticket domain.Ticket, now time.Time) float64 {
	if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
		return 0.0
	}
	if !now.Before(ticket.SLADeadline) {
		return 1.0
	}

	total := ticket.SLADeadline.Sub(ticket.CreatedAt)
	if total <= 0 {
		return 1.0
	}
	elapsed := now.Sub(ticket.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	progress := float64(elapsed) / float64(total)

	score := math.Pow(progress, 1.5)
	score *= statusFactor(ticket.Status)
	score *= priorityFactor(ticket.Priority)
	score *= 1 + float64(ticket.EscalationLevel)*escalationFactorStep

	return clamp01(score)
}

// Level buckets a score into the discrete risk level.
func (m *RiskModel) Level(score float64) domain.RiskLevel {
	switch {
	case score >= levelCriticalFloor:
		return domain.RiskLevelCritical
	case score >= levelHighFloor:
		return domain.RiskLevelHigh
	case score >= levelMediumFloor:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

func statusFactor(status domain.TicketStatus) float64 {
	if factor, ok := statusFactors[status]; ok {
		return factor
	}
	return 1.0
}

func priorityFactor(priority domain.TicketPriority) float64 {
	if factor, ok := priorityFactors[priority]; ok {
		return factor
	}
	return 1.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
