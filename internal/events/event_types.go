package events

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSLABreachDetected EventType = "sla_breach_detected"
	EventTicketAtRisk      EventType = "ticket_at_risk"
)

// Event represents a domain event emitted by the breach scanner.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	CustomerID string      `json:"customer_id"`
	TicketID   string      `json:"ticket_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// SLABreachPayload carries the alert details for a breached or at-risk
// ticket.
type SLABreachPayload struct {
	RiskScore             float64               `json:"risk_score"`
	RiskLevel             domain.RiskLevel      `json:"risk_level"`
	Severity              domain.RiskLevel      `json:"severity"`
	MinutesRemaining      int                   `json:"minutes_remaining"`
	MinutesOverdue        int                   `json:"minutes_overdue,omitempty"`
	Priority              domain.TicketPriority `json:"priority"`
	CustomerTier          domain.CustomerTier   `json:"customer_tier"`
	EscalationRecommended bool                  `json:"escalation_recommended"`
	RecommendedActions    []string              `json:"recommended_actions,omitempty"`
}
