package domain

import "time"

// TicketStatus enumerates support request lifecycle states.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusOnHold     TicketStatus = "on_hold"
)

// ValidTicketStatus reports whether the value is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed, TicketStatusOnHold:
		return true
	}
	return false
}

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:    {TicketStatusInProgress, TicketStatusOnHold, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusOnHold, TicketStatusClosed},
	TicketStatusOnHold:     {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusClosed, TicketStatusInProgress},
	TicketStatusClosed:     {},
}

// CanTransitionTicket reports whether the ticket may move from current to next.
func CanTransitionTicket(current, next TicketStatus) bool {
	for _, candidate := range ticketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TicketCategory buckets support requests for routing and filtering.
type TicketCategory string

const (
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategorySales     TicketCategory = "sales"
	TicketCategoryGeneral   TicketCategory = "general"
)

// ValidTicketCategory reports whether the value is a known category.
func ValidTicketCategory(c TicketCategory) bool {
	switch c {
	case TicketCategoryBilling, TicketCategoryTechnical, TicketCategorySales, TicketCategoryGeneral:
		return true
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidTicketPriority reports whether the value is a known priority.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is a customer support request.
type Ticket struct {
	ID         string
	Code       string
	CustomerID string
	Subject    string
	Category   TicketCategory
	Priority   TicketPriority
	Status     TicketStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ClosedAt   *time.Time
}

// MessageAuthorType distinguishes who wrote a thread entry.
type MessageAuthorType string

const (
	AuthorTypeCustomer MessageAuthorType = "customer"
	AuthorTypeStaff    MessageAuthorType = "staff"
)

// TicketMessage is one entry in a ticket's thread.
type TicketMessage struct {
	ID         string
	TicketID   string
	AuthorType MessageAuthorType
	AuthorID   string
	Body       string
	CreatedAt  time.Time
}
