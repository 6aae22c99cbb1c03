package domain

import "time"

// SubscriptionStatus enumerates the ongoing service relationship states.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// ValidSubscriptionStatus reports whether the value is a known subscription status.
func ValidSubscriptionStatus(s SubscriptionStatus) bool {
	switch s {
	case SubscriptionStatusTrial, SubscriptionStatusActive, SubscriptionStatusPastDue,
		SubscriptionStatusPaused, SubscriptionStatusCancelled:
		return true
	}
	return false
}

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusTrial:     {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusActive:    {SubscriptionStatusPastDue, SubscriptionStatusPaused, SubscriptionStatusCancelled},
	SubscriptionStatusPastDue:   {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusPaused:    {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusCancelled: {},
}

// CanTransitionSubscription reports whether the subscription may move from current to next.
func CanTransitionSubscription(current, next SubscriptionStatus) bool {
	for _, candidate := range subscriptionTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// BillingCycle is how often the subscription renews.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleAnnual  BillingCycle = "annual"
)

// Subscription is a customer's active service.
type Subscription struct {
	ID          string
	CustomerID  string
	PlanID      string
	OrderID     string
	Status      SubscriptionStatus
	Cycle       BillingCycle
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
