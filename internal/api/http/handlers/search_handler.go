package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/service"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// SearchHandler exposes the ticket search endpoint.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler returns a new handler instance.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search runs one search request.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	result, err := h.search.Search(c.UserContext(), req.ToSearchQuery())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.FromSearchResult(result))
}
