package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/service"
	"github.com/spec-kit/sla-engine/internal/sla"
	"github.com/spec-kit/sla-engine/internal/store"
)

type emptyStore struct{}

func (emptyStore) Query(context.Context, store.QueryInput) (store.Page, error) {
	return store.Page{}, nil
}

func (emptyStore) Scan(context.Context, store.ScanInput) (store.Page, error) {
	return store.Page{}, nil
}

func testSLAService() *service.SLAService {
	return service.NewSLAService(service.SLADependencies{
		Table: sla.NewConfigTable(sla.DefaultTargets(), sla.DefaultBusinessHours(), nil),
		Store: emptyStore{},
	})
}

func TestRunDisabledReturnsImmediately(t *testing.T) {
	w := NewBreachWorker(testSLAService(), zap.NewNop(), config.ScannerConfig{Enabled: false})

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return for a disabled scanner")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	w := NewBreachWorker(testSLAService(), zap.NewNop(), config.ScannerConfig{
		Enabled:         true,
		IntervalSeconds: 3600,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
