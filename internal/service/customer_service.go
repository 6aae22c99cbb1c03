package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/listing"
	"github.com/auroranet/portal-service/internal/repository"
)

// CustomerService serves the back-office customer directory.
type CustomerService struct {
	users repository.UserRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(users repository.UserRepository) *CustomerService {
	return &CustomerService{users: users}
}

// AdminCustomerQuery captures the admin list parameters.
type AdminCustomerQuery struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// AdminList returns a page of customer accounts. The directory is the
// identity collection itself, so search here is a single filtered query
// rather than the two-pass flow the other admin lists use.
func (s *CustomerService) AdminList(ctx context.Context, query AdminCustomerQuery) ([]domain.User, listing.Pagination, error) {
	req := listing.NormalizePage(query.Page, query.Limit)

	customer := domain.RoleCustomer
	filter := repository.UserFilter{
		Role:       &customer,
		SearchTerm: strings.TrimSpace(query.Search),
		Limit:      req.Limit,
		Offset:     req.Offset(),
	}
	if query.Status != "" && query.Status != "all" {
		status := domain.UserStatus(query.Status)
		filter.Status = &status
	}

	var (
		total int
		items []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.users.CountWithFilter(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.users.ListWithFilter(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(total, req), nil
}
