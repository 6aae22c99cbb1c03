package dto

import (
	"time"

	"github.com/auroranet/portal-service/internal/domain"
)

// SubscriptionStatusUpdateRequest is the admin status-patch body.
type SubscriptionStatusUpdateRequest struct {
	Status string `json:"status"`
}

// SubscriptionResponse is the customer and admin view of a subscription.
type SubscriptionResponse struct {
	ID          string                    `json:"id"`
	CustomerID  string                    `json:"customerId"`
	PlanID      string                    `json:"planId"`
	OrderID     string                    `json:"orderId"`
	Status      domain.SubscriptionStatus `json:"status"`
	Cycle       domain.BillingCycle       `json:"cycle"`
	PeriodStart time.Time                 `json:"periodStart"`
	PeriodEnd   time.Time                 `json:"periodEnd"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// NewSubscriptionResponse maps a subscription.
func NewSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          sub.ID,
		CustomerID:  sub.CustomerID,
		PlanID:      sub.PlanID,
		OrderID:     sub.OrderID,
		Status:      sub.Status,
		Cycle:       sub.Cycle,
		PeriodStart: sub.PeriodStart,
		PeriodEnd:   sub.PeriodEnd,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}

// NewSubscriptionResponses maps a slice of subscriptions.
func NewSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, NewSubscriptionResponse(&subs[i]))
	}
	return out
}
