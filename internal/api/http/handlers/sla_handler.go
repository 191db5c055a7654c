package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/service"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// SLAHandler exposes SLA status and breach endpoints.
type SLAHandler struct {
	sla     *service.SLAService
	search  *service.SearchService
	scanner config.ScannerConfig
}

// NewSLAHandler returns a new handler instance.
func NewSLAHandler(slaService *service.SLAService, search *service.SearchService, scanner config.ScannerConfig) *SLAHandler {
	return &SLAHandler{sla: slaService, search: search, scanner: scanner}
}

// TicketStatus returns the derived SLA status for one ticket.
func (h *SLAHandler) TicketStatus(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	ticketID := c.Params("ticketId")
	if customerID == "" || ticketID == "" {
		return apperrors.NewValidationError("customer and ticket identifiers required", nil)
	}

	ticket, err := h.search.GetTicket(c.UserContext(), customerID, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}

	status := h.sla.GetSLAStatus(ticket, time.Time{})
	return c.JSON(dto.FromSLAStatus(status))
}

// Breaches runs an on-demand breach scan.
func (h *SLAHandler) Breaches(c *fiber.Ctx) error {
	riskThreshold := h.queryThreshold(c, "risk_threshold", h.scanner.RiskThreshold)
	criticalThreshold := h.queryThreshold(c, "critical_threshold", h.scanner.CriticalThreshold)

	alerts, err := h.sla.CheckSLABreaches(c.UserContext(), riskThreshold, criticalThreshold)
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.BreachAlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, dto.FromBreachAlert(alert))
	}
	return c.JSON(fiber.Map{"alerts": out, "count": len(out)})
}

// AtRisk lists active tickets above the risk threshold.
func (h *SLAHandler) AtRisk(c *fiber.Ctx) error {
	riskThreshold := h.queryThreshold(c, "risk_threshold", h.scanner.RiskThreshold)

	tickets, err := h.sla.GetTicketsAtRisk(c.UserContext(), riskThreshold)
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.TicketRiskResponse, 0, len(tickets))
	for _, risk := range tickets {
		out = append(out, dto.FromTicketRisk(risk))
	}
	return c.JSON(fiber.Map{"tickets": out, "count": len(out)})
}

func (h *SLAHandler) queryThreshold(c *fiber.Ctx, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return fallback
	}
	return parsed
}
