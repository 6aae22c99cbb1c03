package events

import (
	"time"

	"github.com/auroranet/portal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated              EventType = "order_created"
	EventOrderStatusChanged        EventType = "order_status_changed"
	EventTicketCreated             EventType = "ticket_created"
	EventTicketStatusChanged       EventType = "ticket_status_changed"
	EventTicketMessageAdded        EventType = "ticket_message_added"
	EventSubscriptionStatusChanged EventType = "subscription_status_changed"
	EventPasswordResetRequested    EventType = "password_reset_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	SubjectID  string      `json:"subjectId"`
	CustomerID string      `json:"customerId,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	Code   string             `json:"code"`
	PlanID string             `json:"planId"`
	Totals domain.OrderTotals `json:"totals"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"oldStatus"`
	NewStatus domain.OrderStatus `json:"newStatus"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Code     string                `json:"code"`
	Subject  string                `json:"subject"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"oldStatus"`
	NewStatus domain.TicketStatus `json:"newStatus"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string                   `json:"messageId"`
	AuthorType  domain.MessageAuthorType `json:"authorType"`
	BodyPreview string                   `json:"bodyPreview"`
}

// SubscriptionStatusChangedPayload payload.
type SubscriptionStatusChangedPayload struct {
	OldStatus domain.SubscriptionStatus `json:"oldStatus"`
	NewStatus domain.SubscriptionStatus `json:"newStatus"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	Email    string `json:"email"`
	ResetURL string `json:"resetUrl"`
}
