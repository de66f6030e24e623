package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
	"github.com/shakthi215/SupportTicketSystem/internal/events"
	apperrors "github.com/shakthi215/SupportTicketSystem/pkg/util"
)

func newTestTicketService(repo *fakeTicketRepo, dispatcher *recordingDispatcher) *TicketService {
	deps := TicketDependencies{TicketRepo: repo}
	if dispatcher != nil {
		deps.Dispatcher = dispatcher
	}
	return NewTicketService(deps)
}

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.HTTPStatus != 400 {
		t.Fatalf("expected status 400, got %d", domainErr.HTTPStatus)
	}
	return domainErr.Details
}

func TestCreateTicket_ForcesOpenStatusAndTrims(t *testing.T) {
	repo := &fakeTicketRepo{}
	dispatcher := &recordingDispatcher{}
	svc := newTestTicketService(repo, dispatcher)

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "  Login broken  ",
		Description: "  Cannot access account  ",
		Category:    domain.CategoryAccount,
		Priority:    domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Status != domain.StatusOpen {
		t.Errorf("status = %q, want open", ticket.Status)
	}
	if ticket.Title != "Login broken" {
		t.Errorf("title not trimmed: %q", ticket.Title)
	}
	if ticket.Description != "Cannot access account" {
		t.Errorf("description not trimmed: %q", ticket.Description)
	}
	if ticket.ID == "" || ticket.CreatedAt.IsZero() {
		t.Error("expected store-assigned id and created_at")
	}

	created := dispatcher.byType(events.EventTicketCreated)
	if len(created) != 1 {
		t.Fatalf("expected 1 created event, got %d", len(created))
	}
	if created[0].TicketID != ticket.ID {
		t.Errorf("event ticket id = %q, want %q", created[0].TicketID, ticket.ID)
	}
}

func TestCreateTicket_ValidationDetails(t *testing.T) {
	tests := []struct {
		name      string
		input     TicketCreateInput
		wantField string
	}{
		{
			name:      "blank title",
			input:     TicketCreateInput{Title: "   ", Description: "desc", Category: domain.CategoryGeneral, Priority: domain.PriorityLow},
			wantField: "title",
		},
		{
			name:      "title too long",
			input:     TicketCreateInput{Title: strings.Repeat("x", 201), Description: "desc", Category: domain.CategoryGeneral, Priority: domain.PriorityLow},
			wantField: "title",
		},
		{
			name:      "blank description",
			input:     TicketCreateInput{Title: "title", Description: " \t ", Category: domain.CategoryGeneral, Priority: domain.PriorityLow},
			wantField: "description",
		},
		{
			name:      "unknown category",
			input:     TicketCreateInput{Title: "title", Description: "desc", Category: "spam", Priority: domain.PriorityLow},
			wantField: "category",
		},
		{
			name:      "unknown priority",
			input:     TicketCreateInput{Title: "title", Description: "desc", Category: domain.CategoryGeneral, Priority: "urgent"},
			wantField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTicketRepo{}
			svc := newTestTicketService(repo, nil)

			_, err := svc.CreateTicket(context.Background(), tt.input)
			details := validationDetails(t, err)
			if _, ok := details[tt.wantField]; !ok {
				t.Errorf("expected detail for field %q, got %v", tt.wantField, details)
			}
			if repo.createCalls != 0 {
				t.Error("invalid input must not reach the repository")
			}
		})
	}
}

func TestCreateTicket_TitleExactly200IsValid(t *testing.T) {
	repo := &fakeTicketRepo{}
	svc := newTestTicketService(repo, nil)

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       strings.Repeat("x", 200),
		Description: "desc",
		Category:    domain.CategoryGeneral,
		Priority:    domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateTicket_OnlyMutableFieldsTouchStore(t *testing.T) {
	repo := &fakeTicketRepo{}
	dispatcher := &recordingDispatcher{}
	svc := newTestTicketService(repo, dispatcher)

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Login broken",
		Description: "Cannot access account, password reset email never arrives",
		Category:    domain.CategoryAccount,
		Priority:    domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved := domain.StatusResolved
	updated, err := svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Status != domain.StatusResolved {
		t.Errorf("status = %q, want resolved", updated.Status)
	}
	if updated.Title != created.Title {
		t.Errorf("title changed on status update: %q", updated.Title)
	}
	if updated.Description != created.Description {
		t.Errorf("description changed on status update: %q", updated.Description)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created_at changed on status update")
	}
	if repo.lastUpdate.Category != nil || repo.lastUpdate.Priority != nil {
		t.Error("update carried fields that were not requested")
	}

	statusChanged := dispatcher.byType(events.EventTicketStatusChanged)
	if len(statusChanged) != 1 {
		t.Fatalf("expected 1 status change event, got %d", len(statusChanged))
	}
	payload, ok := statusChanged[0].Payload.(events.TicketStatusChangedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", statusChanged[0].Payload)
	}
	if payload.OldStatus != domain.StatusOpen || payload.NewStatus != domain.StatusResolved {
		t.Errorf("status transition = %s -> %s, want open -> resolved", payload.OldStatus, payload.NewStatus)
	}
}

func TestUpdateTicket_NotFound(t *testing.T) {
	svc := newTestTicketService(&fakeTicketRepo{}, nil)

	status := domain.StatusClosed
	_, err := svc.UpdateTicket(context.Background(), "missing", TicketUpdateInput{Status: &status})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestUpdateTicket_InvalidEnum(t *testing.T) {
	svc := newTestTicketService(&fakeTicketRepo{}, nil)

	bad := domain.TicketStatus("done")
	_, err := svc.UpdateTicket(context.Background(), "any", TicketUpdateInput{Status: &bad})
	details := validationDetails(t, err)
	if _, ok := details["status"]; !ok {
		t.Errorf("expected status detail, got %v", details)
	}
}

func TestListTickets_InvalidFilterRejected(t *testing.T) {
	svc := newTestTicketService(&fakeTicketRepo{}, nil)

	category := domain.TicketCategory("bogus")
	_, err := svc.ListTickets(context.Background(), TicketListFilter{Category: &category})
	details := validationDetails(t, err)
	if _, ok := details["category"]; !ok {
		t.Errorf("expected category detail, got %v", details)
	}
}

func TestGetTicket_NotFound(t *testing.T) {
	svc := newTestTicketService(&fakeTicketRepo{}, nil)

	_, err := svc.GetTicket(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
