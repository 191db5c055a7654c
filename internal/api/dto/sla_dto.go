package dto

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// SLAStatusResponse is the derived SLA projection for one ticket.
type SLAStatusResponse struct {
	MinutesRemaining   int     `json:"minutes_remaining"`
	MinutesElapsed     int     `json:"minutes_elapsed"`
	TotalSLAMinutes    int     `json:"total_sla_minutes"`
	ProgressPercentage float64 `json:"progress_percentage"`
	RiskScore          float64 `json:"risk_score"`
	RiskLevel          string  `json:"risk_level"`
	IsOverdue          bool    `json:"is_overdue"`
	MinutesOverdue     int     `json:"minutes_overdue,omitempty"`
}

// BreachAlertResponse is one breach alert.
type BreachAlertResponse struct {
	Ticket                TicketSummary     `json:"ticket"`
	SLAStatus             SLAStatusResponse `json:"sla_status"`
	Severity              string            `json:"severity"`
	RecommendedActions    []string          `json:"recommended_actions"`
	EscalationRecommended bool              `json:"escalation_recommended"`
	DetectedAt            time.Time         `json:"detected_at"`
}

// TicketRiskResponse pairs a ticket with its SLA status.
type TicketRiskResponse struct {
	Ticket    TicketSummary     `json:"ticket"`
	SLAStatus SLAStatusResponse `json:"sla_status"`
}

// FromSLAStatus maps the domain projection.
func FromSLAStatus(status domain.SLAStatus) SLAStatusResponse {
	return SLAStatusResponse{
		MinutesRemaining:   int(status.TimeRemaining.Minutes()),
		MinutesElapsed:     int(status.TimeElapsed.Minutes()),
		TotalSLAMinutes:    int(status.TotalSLATime.Minutes()),
		ProgressPercentage: status.ProgressPercentage,
		RiskScore:          status.RiskScore,
		RiskLevel:          string(status.RiskLevel),
		IsOverdue:          status.IsOverdue,
		MinutesOverdue:     status.MinutesOverdue,
	}
}

// FromBreachAlert maps one alert.
func FromBreachAlert(alert domain.SLABreachAlert) BreachAlertResponse {
	return BreachAlertResponse{
		Ticket:                FromTicket(alert.Ticket),
		SLAStatus:             FromSLAStatus(alert.Status),
		Severity:              string(alert.Severity),
		RecommendedActions:    alert.RecommendedActions,
		EscalationRecommended: alert.EscalationRecommended,
		DetectedAt:            alert.DetectedAt,
	}
}

// FromTicketRisk maps one at-risk pairing.
func FromTicketRisk(risk domain.TicketRisk) TicketRiskResponse {
	return TicketRiskResponse{
		Ticket:    FromTicket(risk.Ticket),
		SLAStatus: FromSLAStatus(risk.Status),
	}
}
