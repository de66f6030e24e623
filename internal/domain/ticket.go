package domain

import "time"

// TicketCategory enumerates the kind of problem a ticket reports.
type TicketCategory string

const (
	CategoryBilling   TicketCategory = "billing"
	CategoryTechnical TicketCategory = "technical"
	CategoryAccount   TicketCategory = "account"
	CategoryGeneral   TicketCategory = "general"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "low"
	PriorityMedium   TicketPriority = "medium"
	PriorityHigh     TicketPriority = "high"
	PriorityCritical TicketPriority = "critical"
)

// TicketStatus enumerates lifecycle states.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Categories lists every valid category. Breakdown maps are zero-filled from
// this slice so callers always see the full vocabulary.
func Categories() []TicketCategory {
	return []TicketCategory{CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral}
}

// Priorities lists every valid priority, least urgent first.
func Priorities() []TicketPriority {
	return []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Statuses lists every valid status.
func Statuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// Valid reports membership in the category vocabulary.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral:
		return true
	}
	return false
}

// Valid reports membership in the priority vocabulary.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports membership in the status vocabulary.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// TitleMaxLength is enforced at the validation layer and again as a CHECK
// constraint in the tickets table.
const TitleMaxLength = 200

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Classification is the ephemeral suggestion produced by the classifier.
// It is never persisted; both fields are always valid vocabulary members.
type Classification struct {
	SuggestedCategory TicketCategory
	SuggestedPriority TicketPriority
}

// DefaultClassification is the safe fallback used whenever classification
// cannot produce a trustworthy answer.
func DefaultClassification() Classification {
	return Classification{
		SuggestedCategory: CategoryGeneral,
		SuggestedPriority: PriorityMedium,
	}
}
