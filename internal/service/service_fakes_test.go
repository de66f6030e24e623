package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
	"github.com/shakthi215/SupportTicketSystem/internal/events"
	"github.com/shakthi215/SupportTicketSystem/internal/repository"
)

// fakeTicketRepo is an in-memory stand-in for the Postgres repository.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets []domain.Ticket
	nextID  int

	agg    *repository.StatsAggregate
	aggErr error

	createCalls int
	lastUpdate  repository.TicketUpdate
	lastFilter  repository.TicketFilter
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", f.nextID)
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	f.tickets = append(f.tickets, *ticket)
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			ticket := f.tickets[i]
			return &ticket, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter

	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if !strings.Contains(strings.ToLower(ticket.Title), needle) &&
				!strings.Contains(strings.ToLower(ticket.Description), needle) {
				continue
			}
		}
		result = append(result, ticket)
	}
	// Newest first, matching the repository contract.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func (f *fakeTicketRepo) UpdateFields(ctx context.Context, id string, update repository.TicketUpdate) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = update
	for i := range f.tickets {
		if f.tickets[i].ID != id {
			continue
		}
		if update.Category != nil {
			f.tickets[i].Category = *update.Category
		}
		if update.Priority != nil {
			f.tickets[i].Priority = *update.Priority
		}
		if update.Status != nil {
			f.tickets[i].Status = *update.Status
		}
		if !update.IsEmpty() {
			f.tickets[i].UpdatedAt = time.Now().UTC()
		}
		ticket := f.tickets[i]
		return &ticket, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) Aggregate(ctx context.Context) (*repository.StatsAggregate, error) {
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	if f.agg != nil {
		return f.agg, nil
	}
	return &repository.StatsAggregate{
		ByPriority: map[domain.TicketPriority]int64{},
		ByCategory: map[domain.TicketCategory]int64{},
	}, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
