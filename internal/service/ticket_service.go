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

// TicketService coordinates support request workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject  string
	Category string
	Priority string
	Body     string
}

// Create opens a ticket for a customer with its first thread message.
func (s *TicketService) Create(ctx context.Context, customerID string, input TicketCreateInput) (*domain.Ticket, error) {
	var errs []string
	if strings.TrimSpace(input.Subject) == "" {
		errs = append(errs, "Subject is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		errs = append(errs, "Message is required")
	}
	category := domain.TicketCategory(input.Category)
	if !domain.ValidTicketCategory(category) {
		errs = append(errs, "Unknown category")
	}
	priority := domain.TicketPriority(input.Priority)
	if input.Priority == "" {
		priority = domain.TicketPriorityMedium
	} else if !domain.ValidTicketPriority(priority) {
		errs = append(errs, "Unknown priority")
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationErrors(errs)
	}

	ticket := &domain.Ticket{
		Code:       generateCode("TCK"),
		CustomerID: customerID,
		Subject:    strings.TrimSpace(input.Subject),
		Category:   category,
		Priority:   priority,
		Status:     domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		AuthorType: domain.AuthorTypeCustomer,
		AuthorID:   customerID,
		Body:       strings.TrimSpace(input.Body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketCreated,
		SubjectID:  ticket.ID,
		CustomerID: customerID,
		Payload: events.TicketCreatedPayload{
			Code:     ticket.Code,
			Subject:  ticket.Subject,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListForCustomer returns the customer's own tickets, newest first.
func (s *TicketService) ListForCustomer(ctx context.Context, customerID string, page, limit int) ([]domain.Ticket, listing.Pagination, error) {
	req := listing.NormalizePage(page, limit)

	filter := repository.TicketFilter{CustomerID: &customerID, Limit: req.Limit, Offset: req.Offset()}

	var (
		total int
		items []domain.Ticket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.tickets.CountWithFilter(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.tickets.ListWithFilter(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(total, req), nil
}

// GetForCustomer fetches a ticket with its thread, ensuring ownership.
func (s *TicketService) GetForCustomer(ctx context.Context, customerID, ticketID string) (*domain.Ticket, []domain.TicketMessage, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("Ticket")
		}
		return nil, nil, err
	}
	if ticket.CustomerID != customerID {
		return nil, nil, apperrors.NewNotFound("Ticket")
	}

	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, msgs, nil
}

// AddMessage appends to a ticket's thread. Customers may only post to their
// own tickets; staff may post to any. Closed tickets accept no new messages.
func (s *TicketService) AddMessage(ctx context.Context, author *domain.User, ticketID, body string) (*domain.TicketMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("Message body is required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	authorType := domain.AuthorTypeStaff
	if !author.Role.IsStaff() {
		authorType = domain.AuthorTypeCustomer
		if ticket.CustomerID != author.ID {
			return nil, apperrors.NewNotFound("Ticket")
		}
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewValidationError("Ticket is closed")
	}

	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		AuthorType: authorType,
		AuthorID:   author.ID,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketMessageAdded,
		SubjectID:  ticket.ID,
		CustomerID: ticket.CustomerID,
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			AuthorType:  msg.AuthorType,
			BodyPreview: bodyPreview(msg.Body, 120),
		},
	})
	return msg, nil
}

// AdminTicketQuery captures the admin list parameters.
type AdminTicketQuery struct {
	Search   string
	Status   string
	Category string
	Priority string
	Page     int
	Limit    int
}

// AdminList returns a page of tickets, optionally searching across the
// joined customer identity fields, the subject, and the reference code.
func (s *TicketService) AdminList(ctx context.Context, query AdminTicketQuery) ([]domain.Ticket, listing.Pagination, error) {
	req := listing.NormalizePage(query.Page, query.Limit)

	filter := repository.TicketFilter{}
	if query.Status != "" && query.Status != "all" {
		status := domain.TicketStatus(query.Status)
		filter.Status = &status
	}
	if query.Category != "" && query.Category != "all" {
		category := domain.TicketCategory(query.Category)
		filter.Category = &category
	}
	if query.Priority != "" && query.Priority != "all" {
		priority := domain.TicketPriority(query.Priority)
		filter.Priority = &priority
	}

	term := strings.TrimSpace(query.Search)
	if term == "" {
		filter.Limit = req.Limit
		filter.Offset = req.Offset()

		var (
			total int
			items []domain.Ticket
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.tickets.CountWithFilter(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			items, err = s.tickets.ListWithFilter(gctx, filter)
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

	candidates, err := s.tickets.SearchUnpaginated(ctx, filter, identityIDs, term)
	if err != nil {
		return nil, listing.Pagination{}, err
	}

	filtered := listing.Filter(candidates, func(ticket domain.Ticket) bool {
		if user, ok := identityByID[ticket.CustomerID]; ok &&
			listing.ContainsFold(term, user.Name, user.Email, user.Phone) {
			return true
		}
		// code serves as the fallback so searching an exact reference
		// still succeeds when nothing else matches
		return listing.ContainsFold(term, ticket.Subject, ticket.Code)
	})

	return listing.SlicePage(filtered, req), listing.NewPagination(len(filtered), req), nil
}

// AdminUpdateStatus moves a ticket through its lifecycle, enforcing the
// transition table. Re-submitting the current status is a no-op.
func (s *TicketService) AdminUpdateStatus(ctx context.Context, ticketID, status string) (*domain.Ticket, error) {
	newStatus := domain.TicketStatus(status)
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewValidationError("Invalid status value")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	if ticket.Status == newStatus {
		return ticket, nil
	}
	if !domain.CanTransitionTicket(ticket.Status, newStatus) {
		return nil, apperrors.NewValidationError("Invalid status transition")
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	} else if ticket.ClosedAt != nil {
		ticket.ClosedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketStatusChanged,
		SubjectID:  ticket.ID,
		CustomerID: ticket.CustomerID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// bodyPreview truncates on rune boundaries so multi-byte text never ends up
// split mid-character in notification payloads.
func bodyPreview(body string, max int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
