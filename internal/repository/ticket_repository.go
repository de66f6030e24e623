package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

// TicketFilter captures listing query parameters. Every field is optional;
// supplied filters combine with AND.
type TicketFilter struct {
	Category *domain.TicketCategory
	Priority *domain.TicketPriority
	Status   *domain.TicketStatus
	Search   *string
}

// TicketUpdate describes a partial update. Only category, priority and
// status are mutable after creation.
type TicketUpdate struct {
	Category *domain.TicketCategory
	Priority *domain.TicketPriority
	Status   *domain.TicketStatus
}

// IsEmpty reports whether no field is being changed.
func (u TicketUpdate) IsEmpty() bool {
	return u.Category == nil && u.Priority == nil && u.Status == nil
}

// StatsAggregate carries set-based aggregation results straight from the
// store. Breakdown maps only contain values present in the table; the
// service layer zero-fills the rest of the vocabulary.
type StatsAggregate struct {
	Total      int64
	Open       int64
	Earliest   *time.Time
	Latest     *time.Time
	ByPriority map[domain.TicketPriority]int64
	ByCategory map[domain.TicketCategory]int64
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	UpdateFields(ctx context.Context, id string, update TicketUpdate) (*domain.Ticket, error)
	Aggregate(ctx context.Context) (*StatsAggregate, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = "id, title, description, category, priority, status, created_at, updated_at"

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, category, priority, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + escapeLikePattern(strings.ToLower(strings.TrimSpace(*filter.Search))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	// Listing order is created_at descending regardless of filters.
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC`,
		ticketColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// escapeLikePattern neutralizes LIKE metacharacters so the search term
// matches as a literal substring. Backslash is the default escape character
// in Postgres LIKE patterns.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *ticketRepository) UpdateFields(ctx context.Context, id string, update TicketUpdate) (*domain.Ticket, error) {
	sets := []string{}
	args := []any{}

	if update.Category != nil {
		args = append(args, *update.Category)
		sets = append(sets, fmt.Sprintf("category=$%d", len(args)))
	}
	if update.Priority != nil {
		args = append(args, *update.Priority)
		sets = append(sets, fmt.Sprintf("priority=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), ticketColumns)

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Aggregate computes stats with set-based SQL so counting never requires
// loading ticket rows into memory.
func (r *ticketRepository) Aggregate(ctx context.Context) (*StatsAggregate, error) {
	agg := &StatsAggregate{
		ByPriority: make(map[domain.TicketPriority]int64),
		ByCategory: make(map[domain.TicketCategory]int64),
	}

	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'open'),
               MIN(created_at),
               MAX(created_at)
        FROM tickets`
	if err := r.pool.QueryRow(ctx, totals).Scan(&agg.Total, &agg.Open, &agg.Earliest, &agg.Latest); err != nil {
		return nil, err
	}

	if err := r.groupCount(ctx, "priority", func(key string, count int64) {
		agg.ByPriority[domain.TicketPriority(key)] = count
	}); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, "category", func(key string, count int64) {
		agg.ByCategory[domain.TicketCategory(key)] = count
	}); err != nil {
		return nil, err
	}

	return agg, nil
}

func (r *ticketRepository) groupCount(ctx context.Context, column string, collect func(key string, count int64)) error {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM tickets GROUP BY %s`, column, column)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		collect(key, count)
	}
	return rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
