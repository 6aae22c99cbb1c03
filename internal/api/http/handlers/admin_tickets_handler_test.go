package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/cache"
	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/events"
	"github.com/auroranet/portal-service/internal/listing"
	"github.com/auroranet/portal-service/internal/repository"
	"github.com/auroranet/portal-service/internal/service"
)

type fakeTicketRepo struct {
	total      int
	page       []domain.Ticket
	listErr    error
	lastFilter repository.TicketFilter
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = "ticket-new"
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, _ *domain.Ticket) error { return nil }

func (f *fakeTicketRepo) GetByID(_ context.Context, _ string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) CountWithFilter(_ context.Context, _ repository.TicketFilter) (int, error) {
	return f.total, f.listErr
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.lastFilter = filter
	return f.page, f.listErr
}

func (f *fakeTicketRepo) SearchUnpaginated(_ context.Context, _ repository.TicketFilter, _ []string, _ string) ([]domain.Ticket, error) {
	return nil, nil
}

type fakeMessageRepo struct{}

func (f *fakeMessageRepo) Create(_ context.Context, _ *domain.TicketMessage) error { return nil }
func (f *fakeMessageRepo) ListByTicket(_ context.Context, _ string) ([]domain.TicketMessage, error) {
	return nil, nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) CountWithFilter(_ context.Context, _ repository.UserFilter) (int, error) {
	return 0, nil
}
func (f *fakeUserRepo) ListWithFilter(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) SearchIdentity(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

type ticketListBody struct {
	Success    bool                 `json:"success"`
	Tickets    []dto.TicketResponse `json:"tickets"`
	Pagination listing.Pagination   `json:"pagination"`
}

func TestAdminTicketsListFilteredAndPaginated(t *testing.T) {
	page := make([]domain.Ticket, 0, 10)
	for i := 0; i < 10; i++ {
		page = append(page, domain.Ticket{
			ID:       fmt.Sprintf("ticket-%d", i),
			Status:   domain.TicketStatusResolved,
			Category: domain.TicketCategoryBilling,
		})
	}
	repo := &fakeTicketRepo{total: 35, page: page}

	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  repo,
		MessageRepo: &fakeMessageRepo{},
		UserRepo:    &fakeUserRepo{},
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	handler := NewAdminTicketsHandler(svc, nil)

	app := fiber.New()
	app.Get("/api/admin/tickets", handler.List)

	req := httptest.NewRequest("GET", "/api/admin/tickets?status=resolved&category=billing&page=1&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)

	var body ticketListBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.True(t, body.Success)
	assert.Len(t, body.Tickets, 10)
	assert.Equal(t, 1, body.Pagination.CurrentPage)
	assert.Equal(t, 4, body.Pagination.TotalPages)
	assert.Equal(t, 35, body.Pagination.TotalItems)
	assert.Equal(t, 10, body.Pagination.ItemsPerPage)
	assert.True(t, body.Pagination.HasNext)
	assert.False(t, body.Pagination.HasPrev)

	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.TicketStatusResolved, *repo.lastFilter.Status)
	require.NotNil(t, repo.lastFilter.Category)
	assert.Equal(t, domain.TicketCategoryBilling, *repo.lastFilter.Category)
	assert.Nil(t, repo.lastFilter.Priority)
}

func TestAdminTicketsListServesSnapshotWhenDatabaseDown(t *testing.T) {
	repo := &fakeTicketRepo{listErr: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  repo,
		MessageRepo: &fakeMessageRepo{},
		UserRepo:    &fakeUserRepo{},
		Dispatcher:  events.NewInMemoryDispatcher(),
	})

	store := newFakeSnapshotStore()
	store.snapshot = &cache.Snapshot{
		Data:      json.RawMessage(`{"success":true,"tickets":[{"id":"ticket-1"}],"pagination":{"currentPage":1,"totalPages":1,"totalItems":1,"itemsPerPage":20,"hasNext":false,"hasPrev":false}}`),
		FetchedAt: time.Now(),
	}
	handler := NewAdminTicketsHandler(svc, store)

	app := fiber.New()
	app.Get("/api/admin/tickets", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/tickets", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "false", resp.Header.Get("X-Snapshot-Stale"))

	var body ticketListBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Tickets, 1)
	assert.Equal(t, "ticket-1", body.Tickets[0].ID)
}

func TestAdminTicketsListDefaultsLimit(t *testing.T) {
	repo := &fakeTicketRepo{total: 5}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  repo,
		MessageRepo: &fakeMessageRepo{},
		UserRepo:    &fakeUserRepo{},
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	handler := NewAdminTicketsHandler(svc, nil)

	app := fiber.New()
	app.Get("/api/admin/tickets", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/tickets", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ticketListBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 20, body.Pagination.ItemsPerPage)
	assert.Equal(t, 20, repo.lastFilter.Limit)
}
