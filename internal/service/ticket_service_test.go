package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/events"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

func newTicketService(tickets *stubTicketRepo, messages *stubMessageRepo, users *stubUserRepo) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		MessageRepo: messages,
		UserRepo:    users,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
}

func TestCreateTicketOpensPendingWithFirstMessage(t *testing.T) {
	tickets := &stubTicketRepo{}
	messages := &stubMessageRepo{}
	svc := newTicketService(tickets, messages, &stubUserRepo{})

	ticket, err := svc.Create(context.Background(), "cust-1", TicketCreateInput{
		Subject:  "No connection since yesterday",
		Category: "technical",
		Body:     "The modem lights are all red.",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.Code, "TCK-"))
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)

	require.Len(t, messages.messages, 1)
	assert.Equal(t, ticket.ID, messages.messages[0].TicketID)
	assert.Equal(t, domain.AuthorTypeCustomer, messages.messages[0].AuthorType)
}

func TestCreateTicketCollectsAllViolations(t *testing.T) {
	svc := newTicketService(&stubTicketRepo{}, &stubMessageRepo{}, &stubUserRepo{})

	_, err := svc.Create(context.Background(), "cust-1", TicketCreateInput{
		Category: "complaints",
		Priority: "asap",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Errs, "Subject is required")
	assert.Contains(t, domainErr.Errs, "Message is required")
	assert.Contains(t, domainErr.Errs, "Unknown category")
	assert.Contains(t, domainErr.Errs, "Unknown priority")
}

func TestAddMessageCustomerCannotPostToForeignTicket(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{
		ID: "ticket-1", CustomerID: "cust-2", Status: domain.TicketStatusPending,
	}}}
	svc := newTicketService(tickets, &stubMessageRepo{}, &stubUserRepo{})

	author := &domain.User{ID: "cust-1", Role: domain.RoleCustomer}
	_, err := svc.AddMessage(context.Background(), author, "ticket-1", "hello")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestAddMessageStaffPostsToAnyTicket(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{
		ID: "ticket-1", CustomerID: "cust-2", Status: domain.TicketStatusInProgress,
	}}}
	messages := &stubMessageRepo{}
	svc := newTicketService(tickets, messages, &stubUserRepo{})

	author := &domain.User{ID: "staff-1", Role: domain.RoleSupport}
	msg, err := svc.AddMessage(context.Background(), author, "ticket-1", "Looking into it.")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthorTypeStaff, msg.AuthorType)
}

func TestAddMessageRejectsClosedTicket(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{
		ID: "ticket-1", CustomerID: "cust-1", Status: domain.TicketStatusClosed,
	}}}
	svc := newTicketService(tickets, &stubMessageRepo{}, &stubUserRepo{})

	author := &domain.User{ID: "cust-1", Role: domain.RoleCustomer}
	_, err := svc.AddMessage(context.Background(), author, "ticket-1", "reopening?")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestTicketAdminUpdateStatusRejectsUnknownValue(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{ID: "ticket-1", Status: domain.TicketStatusPending}}}
	svc := newTicketService(tickets, &stubMessageRepo{}, &stubUserRepo{})

	_, err := svc.AdminUpdateStatus(context.Background(), "ticket-1", "archived")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Invalid status value", domainErr.Message)
}

func TestTicketAdminUpdateStatusClosedSetsClosedAt(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{ID: "ticket-1", Status: domain.TicketStatusResolved}}}
	svc := newTicketService(tickets, &stubMessageRepo{}, &stubUserRepo{})

	ticket, err := svc.AdminUpdateStatus(context.Background(), "ticket-1", "closed")
	require.NoError(t, err)
	require.NotNil(t, ticket.ClosedAt)

	// re-opening from resolved clears the close timestamp
	tickets.tickets[0].Status = domain.TicketStatusResolved
	reopened, err := svc.AdminUpdateStatus(context.Background(), "ticket-1", "in_progress")
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedAt)
}

func TestTicketAdminUpdateStatusClosedIsTerminal(t *testing.T) {
	tickets := &stubTicketRepo{tickets: []domain.Ticket{{ID: "ticket-1", Status: domain.TicketStatusClosed}}}
	svc := newTicketService(tickets, &stubMessageRepo{}, &stubUserRepo{})

	_, err := svc.AdminUpdateStatus(context.Background(), "ticket-1", "in_progress")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Invalid status transition", domainErr.Message)
}

func TestTicketAdminListSearchMatchesSubjectAndCode(t *testing.T) {
	users := &stubUserRepo{}
	tickets := &stubTicketRepo{searchResult: []domain.Ticket{
		{ID: "ticket-1", CustomerID: "cust-9", Subject: "Billing dispute", Code: "TCK-AAA"},
		{ID: "ticket-2", CustomerID: "cust-9", Subject: "Outage", Code: "TCK-BILL01"},
		{ID: "ticket-3", CustomerID: "cust-9", Subject: "Router swap", Code: "TCK-CCC"},
	}}
	svc := newTicketService(tickets, &stubMessageRepo{}, users)

	result, pagination, err := svc.AdminList(context.Background(), AdminTicketQuery{Search: "bill", Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, 2, pagination.TotalItems)
}

func TestBodyPreviewKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("п", 30)
	preview := bodyPreview(long, 20)

	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, strings.Repeat("п", 17)+"...", preview)

	assert.Equal(t, "déjà vu", bodyPreview("  déjà vu  ", 20))
}
