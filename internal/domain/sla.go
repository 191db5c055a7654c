package domain

import "time"

// RiskLevel is the discrete breach-risk classification used for alerting.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// SLAStatus is the derived SLA projection of a ticket at a point in time.
// It is recomputed on every query and never persisted.
type SLAStatus struct {
	TimeRemaining      time.Duration
	TimeElapsed        time.Duration
	TotalSLATime       time.Duration
	ProgressPercentage float64
	RiskScore          float64
	RiskLevel          RiskLevel
	IsOverdue          bool
	MinutesOverdue     int
}

// SLABreachAlert is a breach-scan projection of a ticket plus its SLA state.
type SLABreachAlert struct {
	Ticket                Ticket
	Status                SLAStatus
	Severity              RiskLevel
	RecommendedActions    []string
	EscalationRecommended bool
	DetectedAt            time.Time
}

// TicketRisk pairs a ticket with its computed SLA status.
type TicketRisk struct {
	Ticket Ticket
	Status SLAStatus
}
