package dto

import (
	"time"

	"github.com/auroranet/portal-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Body     string `json:"body"`
}

// CreateMessageRequest payload for appending to a ticket thread.
type CreateMessageRequest struct {
	Body string `json:"body"`
}

// TicketStatusUpdateRequest is the admin status-patch body.
type TicketStatusUpdateRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the summary view of a ticket.
type TicketResponse struct {
	ID         string                `json:"id"`
	Code       string                `json:"code"`
	CustomerID string                `json:"customerId"`
	Subject    string                `json:"subject"`
	Category   domain.TicketCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Status     domain.TicketStatus   `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	ClosedAt   *time.Time            `json:"closedAt,omitempty"`
}

// TicketDetailResponse adds the message thread.
type TicketDetailResponse struct {
	TicketResponse
	Messages []TicketMessageResponse `json:"messages"`
}

// TicketMessageResponse is one thread entry.
type TicketMessageResponse struct {
	ID         string                   `json:"id"`
	AuthorType domain.MessageAuthorType `json:"authorType"`
	AuthorID   string                   `json:"authorId"`
	Body       string                   `json:"body"`
	CreatedAt  time.Time                `json:"createdAt"`
}

// NewTicketResponse maps a ticket summary.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:         ticket.ID,
		Code:       ticket.Code,
		CustomerID: ticket.CustomerID,
		Subject:    ticket.Subject,
		Category:   ticket.Category,
		Priority:   ticket.Priority,
		Status:     ticket.Status,
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
		ClosedAt:   ticket.ClosedAt,
	}
}

// NewTicketResponses maps a slice of ticket summaries.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// NewTicketDetailResponse maps a ticket with its thread.
func NewTicketDetailResponse(ticket *domain.Ticket, messages []domain.TicketMessage) TicketDetailResponse {
	detail := TicketDetailResponse{
		TicketResponse: NewTicketResponse(ticket),
		Messages:       make([]TicketMessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		detail.Messages = append(detail.Messages, NewTicketMessageResponse(&msg))
	}
	return detail
}

// NewTicketMessageResponse maps a thread entry.
func NewTicketMessageResponse(msg *domain.TicketMessage) TicketMessageResponse {
	return TicketMessageResponse{
		ID:         msg.ID,
		AuthorType: msg.AuthorType,
		AuthorID:   msg.AuthorID,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}
}
