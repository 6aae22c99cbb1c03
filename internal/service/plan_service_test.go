package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroranet/portal-service/internal/domain"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

func strPtr(s string) *string          { return &s }
func intPtr(i int) *int                { return &i }
func floatPtr(f float64) *float64      { return &f }
func tagsPtr(t []domain.PlanTag) *[]domain.PlanTag { return &t }

func validPlanInput() PlanInput {
	return PlanInput{
		Name:          strPtr("Fiber 500"),
		Slug:          strPtr("fiber-500"),
		SpeedDownload: intPtr(500),
		SpeedUpload:   intPtr(100),
		PriceMonthly:  floatPtr(49.99),
	}
}

func TestValidatePlanInputCollectsAllViolations(t *testing.T) {
	input := PlanInput{
		Name:          strPtr("Bad Plan"),
		Slug:          strPtr("Bad_Slug!"),
		SpeedDownload: intPtr(500),
		SpeedUpload:   intPtr(100),
		PriceMonthly:  floatPtr(-10),
		Priority:      intPtr(12),
		TrialDays:     intPtr(45),
		Tags:          tagsPtr([]domain.PlanTag{"mystery"}),
	}

	errs := ValidatePlanInput(input, true)

	assert.Contains(t, errs, "Monthly price cannot be negative")
	assert.Contains(t, errs, "Slug must contain only lowercase letters, numbers, and hyphens")
	assert.Contains(t, errs, "Priority must be between 0 and 11")
	assert.Contains(t, errs, "Trial days must be between 0 and 30")
	assert.Contains(t, errs, "Unknown tag: mystery")
	assert.Len(t, errs, 5)
}

func TestValidatePlanInputRequiredFields(t *testing.T) {
	errs := ValidatePlanInput(PlanInput{}, true)

	assert.Contains(t, errs, "Name is required")
	assert.Contains(t, errs, "Slug is required")
	assert.Contains(t, errs, "Download speed is required")
	assert.Contains(t, errs, "Upload speed is required")
	assert.Contains(t, errs, "Monthly price is required")
}

func TestValidatePlanInputPartialSkipsAbsent(t *testing.T) {
	errs := ValidatePlanInput(PlanInput{PriceMonthly: floatPtr(29.99)}, false)
	assert.Empty(t, errs)
}

func TestPlanCreateDefaultsAndActive(t *testing.T) {
	repo := &stubPlanRepo{}
	svc := NewPlanService(repo)

	plan, err := svc.Create(context.Background(), validPlanInput())
	require.NoError(t, err)

	assert.True(t, plan.Active)
	assert.NotNil(t, plan.Features)
	assert.NotNil(t, plan.Tags)
	assert.NotNil(t, plan.GatewayPrices)
}

func TestPlanCreateSlugConflict(t *testing.T) {
	repo := &stubPlanRepo{plans: []domain.ServicePlan{{ID: "plan-1", Slug: "fiber-500"}}}
	svc := NewPlanService(repo)

	_, err := svc.Create(context.Background(), validPlanInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "Slug already in use", domainErr.Message)
}

func TestPlanUpdateLeavesAbsentFieldsUntouched(t *testing.T) {
	repo := &stubPlanRepo{plans: []domain.ServicePlan{{
		ID:           "plan-1",
		Name:         "Fiber 500",
		Slug:         "fiber-500",
		Speed:        domain.SpeedMbps{Download: 500, Upload: 100},
		PriceMonthly: 49.99,
		Priority:     5,
	}}}
	svc := NewPlanService(repo)

	updated, err := svc.Update(context.Background(), "plan-1", PlanInput{PriceMonthly: floatPtr(39.99)})
	require.NoError(t, err)

	assert.Equal(t, 39.99, updated.PriceMonthly)
	assert.Equal(t, "Fiber 500", updated.Name)
	assert.Equal(t, "fiber-500", updated.Slug)
	assert.Equal(t, 5, updated.Priority)
}

func TestPlanUpdateRejectsInvalidPresentField(t *testing.T) {
	repo := &stubPlanRepo{plans: []domain.ServicePlan{{ID: "plan-1", Slug: "fiber-500"}}}
	svc := NewPlanService(repo)

	_, err := svc.Update(context.Background(), "plan-1", PlanInput{PriceMonthly: floatPtr(-1)})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Errs, "Monthly price cannot be negative")
}

func TestPlanGetBySlugHidesInactive(t *testing.T) {
	repo := &stubPlanRepo{plans: []domain.ServicePlan{{ID: "plan-1", Slug: "legacy", Active: false}}}
	svc := NewPlanService(repo)

	_, err := svc.GetBySlug(context.Background(), "legacy")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}
