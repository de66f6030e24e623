package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
	"github.com/shakthi215/SupportTicketSystem/internal/events"
	"github.com/shakthi215/SupportTicketSystem/internal/repository"
	apperrors "github.com/shakthi215/SupportTicketSystem/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes a partial update; nil fields are untouched.
type TicketUpdateInput struct {
	Category *domain.TicketCategory
	Priority *domain.TicketPriority
	Status   *domain.TicketStatus
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Category *domain.TicketCategory
	Priority *domain.TicketPriority
	Status   *domain.TicketStatus
	Search   *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates input and persists a new ticket. Status is always
// forced to open at creation.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	details := map[string]any{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		details["title"] = "must not be empty"
	} else if len(title) > domain.TitleMaxLength {
		details["title"] = "must not exceed 200 characters"
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		details["description"] = "must not be empty"
	}
	if !input.Category.Valid() {
		details["category"] = "must be one of: billing, technical, account, general"
	}
	if !input.Priority.Valid() {
		details["priority"] = "must be one of: low, medium, high, critical"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket fields", details)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.StatusOpen,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets matching the filter, newest first.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	details := map[string]any{}
	if filter.Category != nil && !filter.Category.Valid() {
		details["category"] = "unknown category"
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		details["priority"] = "unknown priority"
	}
	if filter.Status != nil && !filter.Status.Valid() {
		details["status"] = "unknown status"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid filter values", details)
	}

	return s.tickets.List(ctx, repository.TicketFilter{
		Category: filter.Category,
		Priority: filter.Priority,
		Status:   filter.Status,
		Search:   filter.Search,
	})
}

// GetTicket fetches a single ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket applies a partial update. Title, description and created_at
// are immutable after creation; only the fields carried here can change.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	details := map[string]any{}
	if input.Category != nil && !input.Category.Valid() {
		details["category"] = "must be one of: billing, technical, account, general"
	}
	if input.Priority != nil && !input.Priority.Valid() {
		details["priority"] = "must be one of: low, medium, high, critical"
	}
	if input.Status != nil && !input.Status.Valid() {
		details["status"] = "must be one of: open, in_progress, resolved, closed"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket fields", details)
	}

	var oldStatus domain.TicketStatus
	if input.Status != nil {
		existing, err := s.GetTicket(ctx, id)
		if err != nil {
			return nil, err
		}
		oldStatus = existing.Status
	}

	ticket, err := s.tickets.UpdateFields(ctx, id, repository.TicketUpdate{
		Category: input.Category,
		Priority: input.Priority,
		Status:   input.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			Category: input.Category,
			Priority: input.Priority,
			Status:   input.Status,
		},
	})
	if input.Status != nil && oldStatus != *input.Status {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: *input.Status,
			},
		})
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
