package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/service"
)

// BreachWorker runs the breach scanner on a fixed interval. Alerts are
// published through the event dispatcher by the SLA service itself; the
// worker only drives the schedule.
type BreachWorker struct {
	slaService *service.SLAService
	logger     *zap.Logger
	cfg        config.ScannerConfig
}

// NewBreachWorker constructs the worker.
func NewBreachWorker(slaService *service.SLAService, logger *zap.Logger, cfg config.ScannerConfig) *BreachWorker {
	return &BreachWorker{slaService: slaService, logger: logger, cfg: cfg}
}

// Run blocks until the context is cancelled, scanning on each tick. An
// initial scan runs immediately so alerts are not delayed by one interval
// after startup.
func (w *BreachWorker) Run(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("breach scanner disabled")
		return
	}

	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	w.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("breach scanner stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *BreachWorker) scan(ctx context.Context) {
	alerts, err := w.slaService.CheckSLABreaches(ctx, w.cfg.RiskThreshold, w.cfg.CriticalThreshold)
	if err != nil {
		w.logger.Error("breach scan failed", zap.Error(err))
		return
	}
	w.logger.Info("breach scan complete", zap.Int("alerts", len(alerts)))
}
