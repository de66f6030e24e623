package events

import (
	"time"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketClassified    EventType = "ticket_classified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Category *domain.TicketCategory `json:"category,omitempty"`
	Priority *domain.TicketPriority `json:"priority,omitempty"`
	Status   *domain.TicketStatus   `json:"status,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketClassifiedPayload payload. Outcome records which rung of the parse
// ladder produced the suggestion.
type TicketClassifiedPayload struct {
	SuggestedCategory domain.TicketCategory `json:"suggested_category"`
	SuggestedPriority domain.TicketPriority `json:"suggested_priority"`
	Outcome           string                `json:"outcome"`
}
