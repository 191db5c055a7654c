package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/events"
)

// NotificationService fans breach events out to the Redis alert channel
// and, when configured, a webhook endpoint.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *redis.Client
	logger     *zap.Logger
	cfg        config.ScannerConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redisClient *redis.Client, logger *zap.Logger, cfg config.ScannerConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redisClient,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to breach events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSLABreachDetected, n.handleBreach)
	n.dispatcher.Subscribe(events.EventTicketAtRisk, n.handleBreach)
}

func (n *NotificationService) handleBreach(ctx context.Context, event events.Event) error {
	n.logger.Info("SLA alert",
		zap.String("type", string(event.Type)),
		zap.String("customer_id", event.CustomerID),
		zap.String("ticket_id", event.TicketID))

	n.publishToChannel(ctx, event)
	n.sendWebhookNotificationStub(event)
	return nil
}

func (n *NotificationService) publishToChannel(ctx context.Context, event events.Event) {
	if n.redis == nil || strings.TrimSpace(n.cfg.AlertChannel) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal alert event", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.AlertChannel, body).Err(); err != nil {
		n.logger.Warn("publish alert to redis", zap.Error(err))
	}
}

func (n *NotificationService) sendWebhookNotificationStub(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
