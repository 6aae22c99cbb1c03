package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/repository"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users          []domain.User
	identityResult []domain.User
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(s.users)+1)
	s.users = append(s.users, *user)
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) CountWithFilter(_ context.Context, _ repository.UserFilter) (int, error) {
	return len(s.users), nil
}

func (s *stubUserRepo) ListWithFilter(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubUserRepo) SearchIdentity(_ context.Context, _ string) ([]domain.User, error) {
	return s.identityResult, nil
}

type stubPlanRepo struct {
	plans     []domain.ServicePlan
	createErr error
	updateErr error
}

func (s *stubPlanRepo) Create(_ context.Context, plan *domain.ServicePlan) error {
	if s.createErr != nil {
		return s.createErr
	}
	plan.ID = fmt.Sprintf("plan-%d", len(s.plans)+1)
	s.plans = append(s.plans, *plan)
	return nil
}

func (s *stubPlanRepo) Update(_ context.Context, plan *domain.ServicePlan) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.plans {
		if s.plans[i].ID == plan.ID {
			s.plans[i] = *plan
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubPlanRepo) GetByID(_ context.Context, id string) (*domain.ServicePlan, error) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			p := s.plans[i]
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubPlanRepo) GetBySlug(_ context.Context, slug string) (*domain.ServicePlan, error) {
	for i := range s.plans {
		if s.plans[i].Slug == slug {
			p := s.plans[i]
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubPlanRepo) ListActive(_ context.Context) ([]domain.ServicePlan, error) {
	var active []domain.ServicePlan
	for _, p := range s.plans {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *stubPlanRepo) CountWithFilter(_ context.Context, _ repository.PlanFilter) (int, error) {
	return len(s.plans), nil
}

func (s *stubPlanRepo) ListWithFilter(_ context.Context, _ repository.PlanFilter) ([]domain.ServicePlan, error) {
	return s.plans, nil
}

type stubOrderRepo struct {
	orders       []domain.Order
	searchResult []domain.Order
	updateCalls  int
}

func (s *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = fmt.Sprintf("order-%d", len(s.orders)+1)
	s.orders = append(s.orders, *order)
	return nil
}

func (s *stubOrderRepo) Update(_ context.Context, order *domain.Order) error {
	s.updateCalls++
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = *order
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubOrderRepo) CountWithFilter(_ context.Context, _ repository.OrderFilter) (int, error) {
	return len(s.orders), nil
}

func (s *stubOrderRepo) ListWithFilter(_ context.Context, _ repository.OrderFilter) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) SearchUnpaginated(_ context.Context, _ repository.OrderFilter, _ []string, _ string) ([]domain.Order, error) {
	return s.searchResult, nil
}

type stubTicketRepo struct {
	tickets      []domain.Ticket
	searchResult []domain.Ticket
	updateCalls  int
}

func (s *stubTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = fmt.Sprintf("ticket-%d", len(s.tickets)+1)
	s.tickets = append(s.tickets, *ticket)
	return nil
}

func (s *stubTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	s.updateCalls++
	for i := range s.tickets {
		if s.tickets[i].ID == ticket.ID {
			s.tickets[i] = *ticket
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			t := s.tickets[i]
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTicketRepo) CountWithFilter(_ context.Context, _ repository.TicketFilter) (int, error) {
	return len(s.tickets), nil
}

func (s *stubTicketRepo) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets, nil
}

func (s *stubTicketRepo) SearchUnpaginated(_ context.Context, _ repository.TicketFilter, _ []string, _ string) ([]domain.Ticket, error) {
	return s.searchResult, nil
}

type stubMessageRepo struct {
	messages []domain.TicketMessage
}

func (s *stubMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	msg.ID = fmt.Sprintf("msg-%d", len(s.messages)+1)
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *stubMessageRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketMessage, error) {
	var result []domain.TicketMessage
	for _, m := range s.messages {
		if m.TicketID == ticketID {
			result = append(result, m)
		}
	}
	return result, nil
}

type stubSubscriptionRepo struct {
	subs         []domain.Subscription
	searchResult []domain.Subscription
}

func (s *stubSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	sub.ID = fmt.Sprintf("sub-%d", len(s.subs)+1)
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *stubSubscriptionRepo) Update(_ context.Context, sub *domain.Subscription) error {
	for i := range s.subs {
		if s.subs[i].ID == sub.ID {
			s.subs[i] = *sub
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubSubscriptionRepo) GetByID(_ context.Context, id string) (*domain.Subscription, error) {
	for i := range s.subs {
		if s.subs[i].ID == id {
			sub := s.subs[i]
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubSubscriptionRepo) GetActiveByCustomer(_ context.Context, customerID string) (*domain.Subscription, error) {
	for i := range s.subs {
		if s.subs[i].CustomerID == customerID && s.subs[i].Status != domain.SubscriptionStatusCancelled {
			sub := s.subs[i]
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubSubscriptionRepo) CountWithFilter(_ context.Context, _ repository.SubscriptionFilter) (int, error) {
	return len(s.subs), nil
}

func (s *stubSubscriptionRepo) ListWithFilter(_ context.Context, _ repository.SubscriptionFilter) ([]domain.Subscription, error) {
	return s.subs, nil
}

func (s *stubSubscriptionRepo) SearchUnpaginated(_ context.Context, _ repository.SubscriptionFilter, _ []string) ([]domain.Subscription, error) {
	return s.searchResult, nil
}
