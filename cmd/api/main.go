package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sla-engine/internal/api/http"
	"github.com/spec-kit/sla-engine/internal/api/http/handlers"
	"github.com/spec-kit/sla-engine/internal/auth"
	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/observability"
	"github.com/spec-kit/sla-engine/internal/persistence"
	"github.com/spec-kit/sla-engine/internal/service"
	"github.com/spec-kit/sla-engine/internal/sla"
	"github.com/spec-kit/sla-engine/internal/store"
	"github.com/spec-kit/sla-engine/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	storeClient := store.NewPostgresClient(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()

	table := sla.NewConfigTable(sla.DefaultTargets(), businessHours(cfg.SLA, logger), logger)

	slaService := service.NewSLAService(service.SLADependencies{
		Table:      table,
		Store:      storeClient,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		PageSize:   cfg.Scanner.PageSize,
	})
	searchService := service.NewSearchService(service.SearchDependencies{
		Store:   storeClient,
		Risk:    slaService.RiskModel(),
		Metrics: metrics,
		Logger:  logger,
	})
	notificationService := service.NewNotificationService(dispatcher, redis.Client, logger, cfg.Scanner)
	notificationService.RegisterHandlers()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Search:         handlers.NewSearchHandler(searchService),
		SLA:            handlers.NewSLAHandler(slaService, searchService, cfg.Scanner),
		Auth:           handlers.NewAuthHandler(tokenManager, cfg.Auth),
		AuthMiddleware: authMiddleware,
	})

	breachWorker := worker.NewBreachWorker(slaService, logger, cfg.Scanner)
	go breachWorker.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

// businessHours builds the working calendar from configuration. A bad
// timezone falls back to UTC with a warning rather than failing startup.
func businessHours(cfg config.SLAConfig, logger *zap.Logger) sla.BusinessHours {
	hours := sla.DefaultBusinessHours()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid SLA timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		loc = time.UTC
	}
	hours.Location = loc

	if cfg.WorkStartHour >= 0 && cfg.WorkEndHour > cfg.WorkStartHour {
		hours.StartHour = cfg.WorkStartHour
		hours.EndHour = cfg.WorkEndHour
	}
	if len(cfg.WorkingDays) > 0 {
		hours.WorkingDays = make(map[time.Weekday]bool, len(cfg.WorkingDays))
		for _, day := range cfg.WorkingDays {
			hours.WorkingDays[day] = true
		}
	}
	for _, holiday := range cfg.Holidays {
		hours.Holidays[holiday] = true
	}
	return hours
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
