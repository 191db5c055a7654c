package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/sla"
	"github.com/spec-kit/sla-engine/internal/store"
)

// statusStore serves per-status pages; the scanner queries it concurrently.
type statusStore struct {
	mu    sync.Mutex
	pages map[string]store.Page
	errOn string
}

func (f *statusStore) Query(_ context.Context, in store.QueryInput) (store.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Key == nil {
		return store.Page{}, errors.New("missing key")
	}
	key, _ := in.Key.Value.(string)
	if f.errOn != "" && key == f.errOn {
		return store.Page{}, errors.New("status scan failed")
	}
	return f.pages[key], nil
}

func (f *statusStore) Scan(_ context.Context, _ store.ScanInput) (store.Page, error) {
	return store.Page{}, errors.New("unexpected scan")
}

func newSLAService(client store.Client, dispatcher events.Dispatcher, now time.Time) *SLAService {
	return NewSLAService(SLADependencies{
		Table:      sla.NewConfigTable(sla.DefaultTargets(), sla.DefaultBusinessHours(), nil),
		Store:      client,
		Dispatcher: dispatcher,
		Now:        func() time.Time { return now },
	})
}

func breachFixtures(now time.Time) *statusStore {
	return &statusStore{pages: map[string]store.Page{
		// overdue, risk score 1.0
		"open": {Items: []store.Record{
			ticketRecord("c1", "overdue", domain.TicketStatusOpen, now.Add(-3*time.Hour), now.Add(-time.Hour)),
		}},
		// progress 0.8, score 0.8^1.5 ~ 0.716
		"in_progress": {Items: []store.Record{
			ticketRecord("c1", "closing-in", domain.TicketStatusInProgress, now.Add(-8*time.Hour), now.Add(2*time.Hour)),
		}},
		// progress 0.25, well under any threshold
		"pending_customer": {Items: []store.Record{
			ticketRecord("c1", "calm", domain.TicketStatusPendingCustomer, now.Add(-time.Hour), now.Add(3*time.Hour)),
		}},
	}}
}

func TestCheckSLABreaches(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newSLAService(breachFixtures(now), nil, now)

	alerts, err := svc.CheckSLABreaches(context.Background(), 0.7, 0.9)
	if err != nil {
		t.Fatalf("CheckSLABreaches: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts=%d, want 2", len(alerts))
	}
	if alerts[0].Ticket.TicketID != "overdue" || alerts[1].Ticket.TicketID != "closing-in" {
		t.Fatalf("order=[%s %s], want descending risk score",
			alerts[0].Ticket.TicketID, alerts[1].Ticket.TicketID)
	}
	if alerts[0].Severity != domain.RiskLevelCritical {
		t.Fatalf("overdue severity=%s, want critical", alerts[0].Severity)
	}
	if !alerts[0].Status.IsOverdue || alerts[0].Status.MinutesOverdue != 60 {
		t.Fatalf("overdue status=%+v, want 60 minutes overdue", alerts[0].Status)
	}
	if alerts[1].Severity != domain.RiskLevelHigh {
		t.Fatalf("at-risk severity=%s, want high", alerts[1].Severity)
	}
	if !alerts[0].EscalationRecommended {
		t.Fatal("overdue alert should recommend escalation")
	}
	if len(alerts[0].RecommendedActions) == 0 {
		t.Fatal("alert carries no recommended actions")
	}
}

func TestCheckSLABreachesPublishesEvents(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	seen := map[events.EventType]int{}
	record := func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen[event.Type]++
		return nil
	}
	dispatcher.Subscribe(events.EventSLABreachDetected, record)
	dispatcher.Subscribe(events.EventTicketAtRisk, record)

	svc := newSLAService(breachFixtures(now), dispatcher, now)
	if _, err := svc.CheckSLABreaches(context.Background(), 0.7, 0.9); err != nil {
		t.Fatalf("CheckSLABreaches: %v", err)
	}

	if seen[events.EventSLABreachDetected] != 1 {
		t.Fatalf("breach events=%d, want 1", seen[events.EventSLABreachDetected])
	}
	if seen[events.EventTicketAtRisk] != 1 {
		t.Fatalf("at-risk events=%d, want 1", seen[events.EventTicketAtRisk])
	}
}

func TestGetTicketsAtRiskDoesNotPublish(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dispatcher := events.NewInMemoryDispatcher()

	published := 0
	dispatcher.Subscribe(events.EventSLABreachDetected, func(context.Context, events.Event) error {
		published++
		return nil
	})
	dispatcher.Subscribe(events.EventTicketAtRisk, func(context.Context, events.Event) error {
		published++
		return nil
	})

	svc := newSLAService(breachFixtures(now), dispatcher, now)
	atRisk, err := svc.GetTicketsAtRisk(context.Background(), 0.7)
	if err != nil {
		t.Fatalf("GetTicketsAtRisk: %v", err)
	}
	if len(atRisk) != 2 {
		t.Fatalf("atRisk=%d, want 2", len(atRisk))
	}
	if atRisk[0].Status.RiskScore < atRisk[1].Status.RiskScore {
		t.Fatal("at-risk tickets not ordered by descending risk score")
	}
	if published != 0 {
		t.Fatalf("published=%d events, want none from a read", published)
	}
}

func TestCheckSLABreachesPropagatesScanError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client := breachFixtures(now)
	client.errOn = "in_progress"

	svc := newSLAService(client, nil, now)
	if _, err := svc.CheckSLABreaches(context.Background(), 0.7, 0.9); err == nil {
		t.Fatal("CheckSLABreaches returned nil error, want scan failure")
	}
}

func TestCalculateSLADeadline(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := newSLAService(&statusStore{}, nil, now)

	got := svc.CalculateSLADeadline(domain.TierEnterprise, domain.TicketPriorityCritical, now)
	if want := now.Add(60 * time.Minute); !got.Equal(want) {
		t.Fatalf("deadline=%v, want %v", got, want)
	}
}

func TestGetSLAStatusDefaultsToClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newSLAService(&statusStore{}, nil, now)

	ticket := domain.Ticket{
		CustomerID:  "c1",
		TicketID:    "t1",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		CreatedAt:   now.Add(-time.Hour),
		SLADeadline: now.Add(time.Hour),
	}
	status := svc.GetSLAStatus(ticket, time.Time{})
	if status.ProgressPercentage != 50 {
		t.Fatalf("progress=%v, want 50 at the injected clock", status.ProgressPercentage)
	}
}
