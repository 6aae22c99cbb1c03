package domain

import "time"

// OrderStatus enumerates the purchase lifecycle.
type OrderStatus string

const (
	OrderStatusInitiated       OrderStatus = "initiated"
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusScheduled       OrderStatus = "scheduled"
	OrderStatusInstalled       OrderStatus = "installed"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusFailed          OrderStatus = "failed"
)

// ValidOrderStatus reports whether the value is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusInitiated, OrderStatusAwaitingPayment, OrderStatusPaid,
		OrderStatusScheduled, OrderStatusInstalled, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusInitiated:       {OrderStatusAwaitingPayment, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusAwaitingPayment: {OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaid:            {OrderStatusScheduled, OrderStatusCancelled},
	OrderStatusScheduled:       {OrderStatusInstalled, OrderStatusCancelled},
	OrderStatusInstalled:       {},
	OrderStatusCancelled:       {},
	OrderStatusFailed:          {},
}

// CanTransitionOrder reports whether the order may move from current to next.
func CanTransitionOrder(current, next OrderStatus) bool {
	for _, candidate := range orderTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks money movement independently of fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// OrderTotals is the checkout price breakdown.
type OrderTotals struct {
	Monthly  float64 `json:"monthly"`
	SetupFee float64 `json:"setupFee"`
	Discount float64 `json:"discount"`
	DueNow   float64 `json:"dueNow"`
}

// InstallationSlot is the booked technician visit window.
type InstallationSlot struct {
	Date   string `json:"date"`
	Window string `json:"window"`
}

// Order is a customer's purchase of a plan.
type Order struct {
	ID            string
	Code          string
	CustomerID    string
	PlanID        string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	Totals        OrderTotals
	Installation  *InstallationSlot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
