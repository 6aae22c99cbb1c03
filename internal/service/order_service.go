package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/events"
	"github.com/auroranet/portal-service/internal/listing"
	"github.com/auroranet/portal-service/internal/repository"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// OrderService coordinates checkout and order lifecycle management.
type OrderService struct {
	orders        repository.OrderRepository
	plans         repository.PlanRepository
	users         repository.UserRepository
	subscriptions *SubscriptionService
	dispatcher    events.Dispatcher
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo     repository.OrderRepository
	PlanRepo      repository.PlanRepository
	UserRepo      repository.UserRepository
	Subscriptions *SubscriptionService
	Dispatcher    events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:        deps.OrderRepo,
		plans:         deps.PlanRepo,
		users:         deps.UserRepo,
		subscriptions: deps.Subscriptions,
		dispatcher:    deps.Dispatcher,
	}
}

// Checkout creates an order for the customer from an active plan.
func (s *OrderService) Checkout(ctx context.Context, customerID, planSlug string) (*domain.Order, error) {
	plan, err := s.plans.GetBySlug(ctx, strings.TrimSpace(planSlug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Plan")
		}
		return nil, err
	}
	if !plan.Active {
		return nil, apperrors.NewValidationError("Plan is not available for purchase")
	}

	totals := domain.OrderTotals{
		Monthly:  plan.PriceMonthly,
		SetupFee: plan.SetupFee,
		Discount: 0,
		DueNow:   plan.PriceMonthly + plan.SetupFee,
	}
	if plan.TrialDays > 0 {
		totals.DueNow = plan.SetupFee
	}

	order := &domain.Order{
		Code:          generateCode("ORD"),
		CustomerID:    customerID,
		PlanID:        plan.ID,
		Status:        domain.OrderStatusInitiated,
		PaymentStatus: domain.PaymentStatusPending,
		Totals:        totals,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventOrderCreated,
		SubjectID:  order.ID,
		CustomerID: customerID,
		Payload: events.OrderCreatedPayload{
			Code:   order.Code,
			PlanID: order.PlanID,
			Totals: order.Totals,
		},
	})
	return order, nil
}

// ListForCustomer returns the customer's own orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, page, limit int) ([]domain.Order, listing.Pagination, error) {
	req := listing.NormalizePage(page, limit)

	filter := repository.OrderFilter{CustomerID: &customerID, Limit: req.Limit, Offset: req.Offset()}

	var (
		total int
		items []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.orders.CountWithFilter(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.orders.ListWithFilter(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(total, req), nil
}

// GetForCustomer fetches an order ensuring ownership.
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.NewNotFound("Order")
	}
	return order, nil
}

// AdminOrderQuery captures the admin list parameters.
type AdminOrderQuery struct {
	Search        string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

// AdminList returns a page of orders, optionally searching across the joined
// customer identity fields. Search mode fetches the full match set, runs the
// defensive in-process re-filter, and slices the page manually.
func (s *OrderService) AdminList(ctx context.Context, query AdminOrderQuery) ([]domain.Order, listing.Pagination, error) {
	req := listing.NormalizePage(query.Page, query.Limit)

	filter := repository.OrderFilter{}
	if query.Status != "" && query.Status != "all" {
		status := domain.OrderStatus(query.Status)
		filter.Status = &status
	}
	if query.PaymentStatus != "" && query.PaymentStatus != "all" {
		payment := domain.PaymentStatus(query.PaymentStatus)
		filter.PaymentStatus = &payment
	}

	term := strings.TrimSpace(query.Search)
	if term == "" {
		filter.Limit = req.Limit
		filter.Offset = req.Offset()

		var (
			total int
			items []domain.Order
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.orders.CountWithFilter(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			items, err = s.orders.ListWithFilter(gctx, filter)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, listing.Pagination{}, err
		}
		return items, listing.NewPagination(total, req), nil
	}

	identities, err := s.users.SearchIdentity(ctx, term)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	identityByID := make(map[string]domain.User, len(identities))
	identityIDs := make([]string, 0, len(identities))
	for _, user := range identities {
		identityByID[user.ID] = user
		identityIDs = append(identityIDs, user.ID)
	}

	candidates, err := s.orders.SearchUnpaginated(ctx, filter, identityIDs, term)
	if err != nil {
		return nil, listing.Pagination{}, err
	}

	filtered := listing.Filter(candidates, func(order domain.Order) bool {
		if user, ok := identityByID[order.CustomerID]; ok &&
			listing.ContainsFold(term, user.Name, user.Email, user.Phone) {
			return true
		}
		return listing.ContainsFold(term, order.Code)
	})

	return listing.SlicePage(filtered, req), listing.NewPagination(len(filtered), req), nil
}

// AdminUpdateStatusInput is the status-patch payload.
type AdminUpdateStatusInput struct {
	Status       string
	Installation *domain.InstallationSlot
}

// AdminUpdateStatus moves an order through its lifecycle, enforcing the
// transition table. Setting the same status twice is a no-op that returns
// the unchanged record.
func (s *OrderService) AdminUpdateStatus(ctx context.Context, orderID string, input AdminUpdateStatusInput) (*domain.Order, error) {
	newStatus := domain.OrderStatus(input.Status)
	if !domain.ValidOrderStatus(newStatus) {
		return nil, apperrors.NewValidationError("Invalid status value")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}
	if !domain.CanTransitionOrder(order.Status, newStatus) {
		return nil, apperrors.NewValidationError("Invalid status transition")
	}

	oldStatus := order.Status
	order.Status = newStatus
	switch newStatus {
	case domain.OrderStatusPaid:
		order.PaymentStatus = domain.PaymentStatusPaid
	case domain.OrderStatusFailed:
		order.PaymentStatus = domain.PaymentStatusFailed
	case domain.OrderStatusScheduled:
		if input.Installation != nil {
			order.Installation = input.Installation
		}
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if newStatus == domain.OrderStatusPaid && s.subscriptions != nil {
		if err := s.subscriptions.ActivateFromOrder(ctx, order); err != nil {
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventOrderStatusChanged,
		SubjectID:  order.ID,
		CustomerID: order.CustomerID,
		Payload: events.OrderStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return order, nil
}
