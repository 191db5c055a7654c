package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// ComputeStatus derives the SLAStatus projection for a ticket at the given
// instant. The projection is recomputed on every call and has no lifecycle
// of its own.
func ComputeStatus(ticket domain.Ticket, now time.Time, model *RiskModel) domain.SLAStatus {
	total := ticket.SLADeadline.Sub(ticket.CreatedAt)
	elapsed := now.Sub(ticket.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := ticket.SLADeadline.Sub(now)

	progress := 0.0
	if total > 0 {
		progress = float64(elapsed) / float64(total) * 100
	}
	if progress > 100 {
		progress = 100
	}

	score := model.Score(ticket, now)
	status := domain.SLAStatus{
		TimeRemaining:      remaining,
		TimeElapsed:        elapsed,
		TotalSLATime:       total,
		ProgressPercentage: progress,
		RiskScore:          score,
		RiskLevel:          model.Level(score),
		IsOverdue:          ticket.IsOverdue(now),
	}
	if status.IsOverdue {
		status.MinutesOverdue = int(now.Sub(ticket.SLADeadline).Minutes())
	}
	return status
}
