package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/events"
	"github.com/auroranet/portal-service/internal/listing"
	"github.com/auroranet/portal-service/internal/repository"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// SubscriptionService manages the ongoing service relationship.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	plans         repository.PlanRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// SubscriptionDependencies bundles requirements for the subscription service.
type SubscriptionDependencies struct {
	SubscriptionRepo repository.SubscriptionRepository
	PlanRepo         repository.PlanRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(deps SubscriptionDependencies) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: deps.SubscriptionRepo,
		plans:         deps.PlanRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// ActivateFromOrder opens the subscription once the order is paid. Plans with
// trial days start in trial with the period covering the trial window.
func (s *SubscriptionService) ActivateFromOrder(ctx context.Context, order *domain.Order) error {
	plan, err := s.plans.GetByID(ctx, order.PlanID)
	if err != nil {
		return err
	}

	now := time.Now()
	sub := &domain.Subscription{
		CustomerID:  order.CustomerID,
		PlanID:      order.PlanID,
		OrderID:     order.ID,
		Status:      domain.SubscriptionStatusActive,
		Cycle:       domain.BillingCycleMonthly,
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, 1, 0),
	}
	if plan.TrialDays > 0 {
		sub.Status = domain.SubscriptionStatusTrial
		sub.PeriodEnd = now.AddDate(0, 0, plan.TrialDays)
	}

	return s.subscriptions.Create(ctx, sub)
}

// GetForCustomer returns the customer's current subscription.
func (s *SubscriptionService) GetForCustomer(ctx context.Context, customerID string) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Subscription")
		}
		return nil, err
	}
	return sub, nil
}

// AdminSubscriptionQuery captures the admin list parameters.
type AdminSubscriptionQuery struct {
	Search string
	Status string
	Cycle  string
	Page   int
	Limit  int
}

// AdminList returns a page of subscriptions, searching via the customer
// identity collection when a term is present.
func (s *SubscriptionService) AdminList(ctx context.Context, query AdminSubscriptionQuery) ([]domain.Subscription, listing.Pagination, error) {
	req := listing.NormalizePage(query.Page, query.Limit)

	filter := repository.SubscriptionFilter{}
	if query.Status != "" && query.Status != "all" {
		status := domain.SubscriptionStatus(query.Status)
		filter.Status = &status
	}
	if query.Cycle != "" && query.Cycle != "all" {
		cycle := domain.BillingCycle(query.Cycle)
		filter.Cycle = &cycle
	}

	term := strings.TrimSpace(query.Search)
	if term == "" {
		filter.Limit = req.Limit
		filter.Offset = req.Offset()

		var (
			total int
			items []domain.Subscription
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.subscriptions.CountWithFilter(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			items, err = s.subscriptions.ListWithFilter(gctx, filter)
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

	candidates, err := s.subscriptions.SearchUnpaginated(ctx, filter, identityIDs)
	if err != nil {
		return nil, listing.Pagination{}, err
	}

	filtered := listing.Filter(candidates, func(sub domain.Subscription) bool {
		user, ok := identityByID[sub.CustomerID]
		return ok && listing.ContainsFold(term, user.Name, user.Email, user.Phone)
	})

	return listing.SlicePage(filtered, req), listing.NewPagination(len(filtered), req), nil
}

// AdminUpdateStatus moves a subscription between states, enforcing the
// transition table.
func (s *SubscriptionService) AdminUpdateStatus(ctx context.Context, subscriptionID, status string) (*domain.Subscription, error) {
	newStatus := domain.SubscriptionStatus(status)
	if !domain.ValidSubscriptionStatus(newStatus) {
		return nil, apperrors.NewValidationError("Invalid status value")
	}

	sub, err := s.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Subscription")
		}
		return nil, err
	}

	if sub.Status == newStatus {
		return sub, nil
	}
	if !domain.CanTransitionSubscription(sub.Status, newStatus) {
		return nil, apperrors.NewValidationError("Invalid status transition")
	}

	oldStatus := sub.Status
	sub.Status = newStatus
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventSubscriptionStatusChanged,
		SubjectID:  sub.ID,
		CustomerID: sub.CustomerID,
		Payload: events.SubscriptionStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return sub, nil
}
