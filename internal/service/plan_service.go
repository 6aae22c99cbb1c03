package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/listing"
	"github.com/auroranet/portal-service/internal/repository"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// PlanService coordinates catalog reads and admin plan management.
type PlanService struct {
	plans repository.PlanRepository
}

// NewPlanService constructs the service.
func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// Catalog returns the public plan catalog.
func (s *PlanService) Catalog(ctx context.Context) ([]domain.ServicePlan, error) {
	return s.plans.ListActive(ctx)
}

// GetBySlug returns a single active plan for the catalog detail page.
func (s *PlanService) GetBySlug(ctx context.Context, slug string) (*domain.ServicePlan, error) {
	plan, err := s.plans.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Plan")
		}
		return nil, err
	}
	if !plan.Active {
		return nil, apperrors.NewNotFound("Plan")
	}
	return plan, nil
}

// AdminPlanQuery captures the admin list parameters.
type AdminPlanQuery struct {
	Search string
	Active string
	Tag    string
	Page   int
	Limit  int
}

// AdminList returns a page of plans for the back office.
func (s *PlanService) AdminList(ctx context.Context, query AdminPlanQuery) ([]domain.ServicePlan, listing.Pagination, error) {
	req := listing.NormalizePage(query.Page, query.Limit)

	filter := repository.PlanFilter{
		SearchTerm: query.Search,
		Limit:      req.Limit,
		Offset:     req.Offset(),
	}
	switch query.Active {
	case "", "all":
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}
	if query.Tag != "" && query.Tag != "all" {
		tag := domain.PlanTag(query.Tag)
		filter.Tag = &tag
	}

	var (
		total int
		items []domain.ServicePlan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.plans.CountWithFilter(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.plans.ListWithFilter(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(total, req), nil
}

// Create validates and persists a new plan.
func (s *PlanService) Create(ctx context.Context, input PlanInput) (*domain.ServicePlan, error) {
	if errs := ValidatePlanInput(input, true); len(errs) > 0 {
		return nil, apperrors.NewValidationErrors(errs)
	}

	if err := s.checkSlugAvailable(ctx, *input.Slug, ""); err != nil {
		return nil, err
	}

	plan := &domain.ServicePlan{Active: true}
	applyPlanInput(plan, input)
	if plan.Features == nil {
		plan.Features = []string{}
	}
	if plan.Tags == nil {
		plan.Tags = []domain.PlanTag{}
	}
	if plan.GatewayPrices == nil {
		plan.GatewayPrices = map[string]string{}
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Slug already in use")
		}
		return nil, err
	}
	return plan, nil
}

// Update applies the present fields of a partial payload to an existing plan.
// Omitted fields are left untouched.
func (s *PlanService) Update(ctx context.Context, id string, input PlanInput) (*domain.ServicePlan, error) {
	if errs := ValidatePlanInput(input, false); len(errs) > 0 {
		return nil, apperrors.NewValidationErrors(errs)
	}

	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Plan")
		}
		return nil, err
	}

	if input.Slug != nil && *input.Slug != plan.Slug {
		if err := s.checkSlugAvailable(ctx, *input.Slug, plan.ID); err != nil {
			return nil, err
		}
	}

	applyPlanInput(plan, input)

	if err := s.plans.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Slug already in use")
		}
		return nil, err
	}
	return plan, nil
}

// checkSlugAvailable pre-checks slug uniqueness. The duplicate-key catch in
// Create/Update still backs this up against concurrent writers.
func (s *PlanService) checkSlugAvailable(ctx context.Context, slug, selfID string) error {
	existing, err := s.plans.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("Slug already in use")
	}
	return nil
}
