package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/observability"
	"github.com/spec-kit/sla-engine/internal/sla"
	"github.com/spec-kit/sla-engine/internal/store"
)

const escalationRecommendThreshold = 0.8

// SLAService exposes deadline, risk and breach-scan operations. It holds
// only immutable configuration and is safe for concurrent use.
type SLAService struct {
	table      *sla.ConfigTable
	deadlines  *sla.DeadlineCalculator
	risk       *sla.RiskModel
	store      store.Client
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	pageSize   int
	now        func() time.Time
}

// SLADependencies bundles collaborators for the SLA service.
type SLADependencies struct {
	Table      *sla.ConfigTable
	Store      store.Client
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	PageSize   int
	Now        func() time.Time
}

// NewSLAService constructs the service.
func NewSLAService(deps SLADependencies) *SLAService {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SLAService{
		table:      deps.Table,
		deadlines:  sla.NewDeadlineCalculator(deps.Table),
		risk:       sla.NewRiskModel(),
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		pageSize:   pageSize,
		now:        now,
	}
}

// RiskModel exposes the underlying model for the search post-filter.
func (s *SLAService) RiskModel() *sla.RiskModel {
	return s.risk
}

// GetSLAStatus derives the SLA projection for a ticket. A zero now means
// the current clock.
func (s *SLAService) GetSLAStatus(ticket domain.Ticket, now time.Time) domain.SLAStatus {
	if now.IsZero() {
		now = s.now()
	}
	return sla.ComputeStatus(ticket, now, s.risk)
}

// CalculateRiskScore returns the continuous [0,1] breach-risk score.
func (s *SLAService) CalculateRiskScore(ticket domain.Ticket, now time.Time) float64 {
	if now.IsZero() {
		now = s.now()
	}
	return s.risk.Score(ticket, now)
}

// CalculateSLADeadline computes the absolute resolution deadline for a new
// ticket.
func (s *SLAService) CalculateSLADeadline(tier domain.CustomerTier, priority domain.TicketPriority, createdAt time.Time) time.Time {
	return s.deadlines.Deadline(tier, priority, createdAt)
}

type statusScanResult struct {
	alerts []domain.SLABreachAlert
	err    error
}

// CheckSLABreaches scans every active status for tickets at or past their
// breach threshold. The per-status fetches are independent reads with no
// ordering dependency, so they fan out in parallel and join before the
// combined sort. Alerts are ordered by descending risk score.
func (s *SLAService) CheckSLABreaches(ctx context.Context, riskThreshold, criticalThreshold float64) ([]domain.SLABreachAlert, error) {
	alerts, err := s.scanAll(ctx, riskThreshold, criticalThreshold)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBreachAlerts(len(alerts))
	s.publishAlerts(ctx, alerts)
	return alerts, nil
}

func (s *SLAService) scanAll(ctx context.Context, riskThreshold, criticalThreshold float64) ([]domain.SLABreachAlert, error) {
	now := s.now()
	results := make(chan statusScanResult, len(domain.ActiveStatuses))

	for _, status := range domain.ActiveStatuses {
		go func(status domain.TicketStatus) {
			alerts, err := s.scanStatus(ctx, status, riskThreshold, criticalThreshold, now)
			results <- statusScanResult{alerts: alerts, err: err}
		}(status)
	}

	var combined []domain.SLABreachAlert
	var firstErr error
	for range domain.ActiveStatuses {
		result := <-results
		if result.err != nil && firstErr == nil {
			firstErr = result.err
			continue
		}
		combined = append(combined, result.alerts...)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Status.RiskScore > combined[j].Status.RiskScore
	})
	return combined, nil
}

// GetTicketsAtRisk returns active tickets whose risk score meets the
// threshold, ordered by descending score.
func (s *SLAService) GetTicketsAtRisk(ctx context.Context, riskThreshold float64) ([]domain.TicketRisk, error) {
	alerts, err := s.scanAll(ctx, riskThreshold, 1.0)
	if err != nil {
		return nil, err
	}
	atRisk := make([]domain.TicketRisk, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Status.RiskScore < riskThreshold {
			continue
		}
		atRisk = append(atRisk, domain.TicketRisk{Ticket: alert.Ticket, Status: alert.Status})
	}
	return atRisk, nil
}

func (s *SLAService) scanStatus(ctx context.Context, status domain.TicketStatus, riskThreshold, criticalThreshold float64, now time.Time) ([]domain.SLABreachAlert, error) {
	page, err := s.store.Query(ctx, store.QueryInput{
		Index: store.IndexStatus,
		Key:   &store.Condition{Attribute: store.AttrStatus, Op: store.OpEq, Value: string(status)},
		Limit: s.pageSize,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordStoreQuery(store.IndexStatus, len(page.Items))

	var alerts []domain.SLABreachAlert
	for _, rec := range page.Items {
		ticket := store.TicketFromRecord(rec)
		slaStatus := sla.ComputeStatus(ticket, now, s.risk)
		if slaStatus.RiskScore < riskThreshold && slaStatus.TimeRemaining > 0 {
			continue
		}

		severity := slaStatus.RiskLevel
		if slaStatus.RiskScore >= criticalThreshold {
			severity = domain.RiskLevelCritical
		}
		alerts = append(alerts, domain.SLABreachAlert{
			Ticket:                ticket,
			Status:                slaStatus,
			Severity:              severity,
			RecommendedActions:    recommendActions(ticket, slaStatus),
			EscalationRecommended: slaStatus.RiskScore > escalationRecommendThreshold,
			DetectedAt:            now,
		})
	}
	return alerts, nil
}

func (s *SLAService) publishAlerts(ctx context.Context, alerts []domain.SLABreachAlert) {
	if s.dispatcher == nil {
		return
	}
	for _, alert := range alerts {
		eventType := events.EventTicketAtRisk
		if alert.Status.IsOverdue {
			eventType = events.EventSLABreachDetected
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       eventType,
			CustomerID: alert.Ticket.CustomerID,
			TicketID:   alert.Ticket.TicketID,
			Timestamp:  alert.DetectedAt,
			Payload: events.SLABreachPayload{
				RiskScore:             alert.Status.RiskScore,
				RiskLevel:             alert.Status.RiskLevel,
				Severity:              alert.Severity,
				MinutesRemaining:      int(alert.Status.TimeRemaining.Minutes()),
				MinutesOverdue:        alert.Status.MinutesOverdue,
				Priority:              alert.Ticket.Priority,
				CustomerTier:          alert.Ticket.CustomerTier,
				EscalationRecommended: alert.EscalationRecommended,
				RecommendedActions:    alert.RecommendedActions,
			},
		})
	}
}

// recommendActions produces the rule-based mitigation hints attached to a
// breach alert.
func recommendActions(ticket domain.Ticket, status domain.SLAStatus) []string {
	var actions []string
	if status.IsOverdue {
		actions = append(actions, "SLA deadline passed; notify the customer and set expectations")
	}
	if ticket.AssignedTechnicianID == nil {
		actions = append(actions, "Assign a technician immediately")
	}
	if status.RiskScore > escalationRecommendThreshold && ticket.EscalationLevel == 0 {
		actions = append(actions, "Escalate to the next support level")
	}
	if ticket.Status == domain.TicketStatusPendingCustomer {
		actions = append(actions, "Follow up with the customer on the pending request")
	}
	if len(actions) == 0 {
		actions = append(actions, "Review ticket progress against the SLA target")
	}
	return actions
}
