package query

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Risk bucket boundaries for search filtering. These deliberately differ
// from the alerting RiskLevel thresholds; the two scales are independent.
const (
	riskBucketMediumFloor = 0.3
	riskBucketHighFloor   = 0.7
)

// RiskScorer computes a [0,1] breach-risk score for a ticket at a point in
// time. Satisfied by sla.RiskModel.
type RiskScorer interface {
	Score(ticket domain.Ticket, now time.Time) float64
}

// PostFilter applies predicates that need derived values the store cannot
// compare natively: the risk bucket, the overdue flag, and the
// resolved/closed exclusion toggles.
type PostFilter struct {
	risk RiskScorer
}

// NewPostFilter builds a post-filter over the given risk model.
func NewPostFilter(risk RiskScorer) *PostFilter {
	return &PostFilter{risk: risk}
}

// Apply filters the candidate set in place order. The exclusion toggles run
// regardless of any explicit status filter: when IncludeResolved or
// IncludeClosed is false the corresponding statuses are dropped even if a
// status filter requested them. Explicit exclusion always wins.
func (p *PostFilter) Apply(candidates []domain.Ticket, q domain.SearchQuery, now time.Time) []domain.Ticket {
	out := candidates[:0]
	for _, ticket := range candidates {
		if !q.IncludeResolved && ticket.Status == domain.TicketStatusResolved {
			continue
		}
		if !q.IncludeClosed && ticket.Status == domain.TicketStatusClosed {
			continue
		}
		if q.Filters.Overdue != nil && ticket.IsOverdue(now) != *q.Filters.Overdue {
			continue
		}
		if q.Filters.SLARisk != nil && riskBucket(p.risk.Score(ticket, now)) != *q.Filters.SLARisk {
			continue
		}
		out = append(out, ticket)
	}
	return out
}

func riskBucket(score float64) domain.RiskBucket {
	switch {
	case score >= riskBucketHighFloor:
		return domain.RiskBucketHigh
	case score >= riskBucketMediumFloor:
		return domain.RiskBucketMedium
	default:
		return domain.RiskBucketLow
	}
}
