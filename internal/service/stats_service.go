package service

import (
	"context"
	"math"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
	"github.com/shakthi215/SupportTicketSystem/internal/repository"
)

// Stats summarizes the full ticket collection.
type Stats struct {
	TotalTickets      int64
	OpenTickets       int64
	AvgTicketsPerDay  float64
	PriorityBreakdown map[domain.TicketPriority]int64
	CategoryBreakdown map[domain.TicketCategory]int64
}

// StatsService computes aggregate ticket statistics.
type StatsService struct {
	tickets repository.TicketRepository
}

// NewStatsService constructs the service.
func NewStatsService(tickets repository.TicketRepository) *StatsService {
	return &StatsService{tickets: tickets}
}

// Compute assembles stats from store-level aggregation. Breakdown maps are
// zero-filled so every vocabulary member is present. The per-day average
// divides the total by the inclusive day span between the earliest and the
// latest ticket creation times (not wall-clock now, so an idle dataset does
// not decay), rounded to one decimal place.
func (s *StatsService) Compute(ctx context.Context) (*Stats, error) {
	agg, err := s.tickets.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalTickets:      agg.Total,
		OpenTickets:       agg.Open,
		PriorityBreakdown: make(map[domain.TicketPriority]int64, len(domain.Priorities())),
		CategoryBreakdown: make(map[domain.TicketCategory]int64, len(domain.Categories())),
	}

	for _, priority := range domain.Priorities() {
		stats.PriorityBreakdown[priority] = agg.ByPriority[priority]
	}
	for _, category := range domain.Categories() {
		stats.CategoryBreakdown[category] = agg.ByCategory[category]
	}

	if agg.Total > 0 && agg.Earliest != nil && agg.Latest != nil {
		days := int64(agg.Latest.Sub(*agg.Earliest).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		stats.AvgTicketsPerDay = roundOneDecimal(float64(agg.Total) / float64(days))
	}

	return stats, nil
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
