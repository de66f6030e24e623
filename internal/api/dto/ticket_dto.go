package dto

import (
	"time"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload for PATCH; absent fields stay unchanged.
// Title, description and timestamps are not accepted here: they are
// immutable after creation.
type UpdateTicketRequest struct {
	Category *domain.TicketCategory `json:"category"`
	Priority *domain.TicketPriority `json:"priority"`
	Status   *domain.TicketStatus   `json:"status"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ClassifyRequest payload.
type ClassifyRequest struct {
	Description string `json:"description"`
}

// ClassifyResponse is always a fully valid suggestion, even when
// classification degraded internally.
type ClassifyResponse struct {
	SuggestedCategory domain.TicketCategory `json:"suggested_category"`
	SuggestedPriority domain.TicketPriority `json:"suggested_priority"`
}

// StatsResponse mirrors the aggregator output.
type StatsResponse struct {
	TotalTickets      int64            `json:"total_tickets"`
	OpenTickets       int64            `json:"open_tickets"`
	AvgTicketsPerDay  float64          `json:"avg_tickets_per_day"`
	PriorityBreakdown map[string]int64 `json:"priority_breakdown"`
	CategoryBreakdown map[string]int64 `json:"category_breakdown"`
}
