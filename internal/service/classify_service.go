package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shakthi215/SupportTicketSystem/internal/classifier"
	"github.com/shakthi215/SupportTicketSystem/internal/domain"
	"github.com/shakthi215/SupportTicketSystem/internal/events"
)

// ClassifyService fronts the classification gateway and publishes an event
// for every suggestion. It inherits the gateway guarantee: Suggest never
// fails and always returns a vocabulary-valid pair.
type ClassifyService struct {
	gateway    *classifier.Gateway
	dispatcher events.Dispatcher
}

// NewClassifyService constructs the service.
func NewClassifyService(gateway *classifier.Gateway, dispatcher events.Dispatcher) *ClassifyService {
	return &ClassifyService{gateway: gateway, dispatcher: dispatcher}
}

// Suggest classifies a free-text description.
func (s *ClassifyService) Suggest(ctx context.Context, description string) domain.Classification {
	suggestion := s.gateway.Classify(ctx, description)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketClassified,
			Timestamp: time.Now().UTC(),
			Payload: events.TicketClassifiedPayload{
				SuggestedCategory: suggestion.SuggestedCategory,
				SuggestedPriority: suggestion.SuggestedPriority,
				Outcome:           string(suggestion.Outcome),
			},
		})
	}
	return suggestion.Classification
}
