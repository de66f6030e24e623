package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shakthi215/SupportTicketSystem/internal/api/dto"
	"github.com/shakthi215/SupportTicketSystem/internal/service"
)

// StatsHandler serves aggregate ticket statistics.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Stats GET /tickets/stats.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Compute(c.UserContext())
	if err != nil {
		return err
	}

	priorities := make(map[string]int64, len(stats.PriorityBreakdown))
	for priority, count := range stats.PriorityBreakdown {
		priorities[string(priority)] = count
	}
	categories := make(map[string]int64, len(stats.CategoryBreakdown))
	for category, count := range stats.CategoryBreakdown {
		categories[string(category)] = count
	}

	return c.JSON(dto.StatsResponse{
		TotalTickets:      stats.TotalTickets,
		OpenTickets:       stats.OpenTickets,
		AvgTicketsPerDay:  stats.AvgTicketsPerDay,
		PriorityBreakdown: priorities,
		CategoryBreakdown: categories,
	})
}
