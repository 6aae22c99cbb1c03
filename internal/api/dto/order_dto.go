package dto

import (
	"time"

	"github.com/auroranet/portal-service/internal/domain"
)

// CheckoutRequest payload.
type CheckoutRequest struct {
	PlanSlug string `json:"planSlug"`
}

// OrderStatusUpdateRequest is the admin status-patch body.
type OrderStatusUpdateRequest struct {
	Status       string                   `json:"status"`
	Installation *domain.InstallationSlot `json:"installation"`
}

// OrderResponse is the customer and admin view of an order.
type OrderResponse struct {
	ID            string                   `json:"id"`
	Code          string                   `json:"code"`
	CustomerID    string                   `json:"customerId"`
	PlanID        string                   `json:"planId"`
	Status        domain.OrderStatus       `json:"status"`
	PaymentStatus domain.PaymentStatus     `json:"paymentStatus"`
	Totals        domain.OrderTotals       `json:"totals"`
	Installation  *domain.InstallationSlot `json:"installation,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		Code:          order.Code,
		CustomerID:    order.CustomerID,
		PlanID:        order.PlanID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Totals:        order.Totals,
		Installation:  order.Installation,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
