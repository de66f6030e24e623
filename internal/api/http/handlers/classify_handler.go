package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shakthi215/SupportTicketSystem/internal/api/dto"
	"github.com/shakthi215/SupportTicketSystem/internal/service"
	apperrors "github.com/shakthi215/SupportTicketSystem/pkg/util"
)

// ClassifyHandler serves the classification suggestion endpoint.
type ClassifyHandler struct {
	service *service.ClassifyService
}

// NewClassifyHandler constructs handler.
func NewClassifyHandler(classifyService *service.ClassifyService) *ClassifyHandler {
	return &ClassifyHandler{service: classifyService}
}

// Classify POST /tickets/classify. A missing or blank description is the
// only failure mode; degraded classification still answers 200 with the
// default suggestion.
func (h *ClassifyHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("invalid classify request",
			map[string]any{"description": "must not be empty"})
	}

	result := h.service.Suggest(c.UserContext(), req.Description)
	return c.JSON(dto.ClassifyResponse{
		SuggestedCategory: result.SuggestedCategory,
		SuggestedPriority: result.SuggestedPriority,
	})
}
