package dto

import (
	"time"

	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/service"
)

// PlanPayload is the admin create/update body. Pointer fields distinguish
// absent from zero so partial updates leave omitted fields untouched.
type PlanPayload struct {
	Name           *string            `json:"name"`
	Slug           *string            `json:"slug"`
	SpeedDownload  *int               `json:"speedDownload"`
	SpeedUpload    *int               `json:"speedUpload"`
	PriceMonthly   *float64           `json:"priceMonthly"`
	SetupFee       *float64           `json:"setupFee"`
	ContractMonths *int               `json:"contractMonths"`
	TrialDays      *int               `json:"trialDays"`
	Priority       *int               `json:"priority"`
	Features       *[]string          `json:"features"`
	Tags           *[]domain.PlanTag  `json:"tags"`
	GatewayPrices  *map[string]string `json:"gatewayPrices"`
	Active         *bool              `json:"active"`
}

// ToInput converts the wire payload into the service input.
func (p PlanPayload) ToInput() service.PlanInput {
	return service.PlanInput{
		Name:           p.Name,
		Slug:           p.Slug,
		SpeedDownload:  p.SpeedDownload,
		SpeedUpload:    p.SpeedUpload,
		PriceMonthly:   p.PriceMonthly,
		SetupFee:       p.SetupFee,
		ContractMonths: p.ContractMonths,
		TrialDays:      p.TrialDays,
		Priority:       p.Priority,
		Features:       p.Features,
		Tags:           p.Tags,
		GatewayPrices:  p.GatewayPrices,
		Active:         p.Active,
	}
}

// PlanResponse is the catalog and admin view of a plan.
type PlanResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Speed          domain.SpeedMbps  `json:"speed"`
	PriceMonthly   float64           `json:"priceMonthly"`
	SetupFee       float64           `json:"setupFee"`
	ContractMonths int               `json:"contractMonths"`
	TrialDays      int               `json:"trialDays"`
	Priority       int               `json:"priority"`
	Features       []string          `json:"features"`
	Tags           []domain.PlanTag  `json:"tags"`
	GatewayPrices  map[string]string `json:"gatewayPrices"`
	Active         bool              `json:"active"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NewPlanResponse maps a plan.
func NewPlanResponse(plan *domain.ServicePlan) PlanResponse {
	features := plan.Features
	if features == nil {
		features = []string{}
	}
	tags := plan.Tags
	if tags == nil {
		tags = []domain.PlanTag{}
	}
	prices := plan.GatewayPrices
	if prices == nil {
		prices = map[string]string{}
	}
	return PlanResponse{
		ID:             plan.ID,
		Name:           plan.Name,
		Slug:           plan.Slug,
		Speed:          plan.Speed,
		PriceMonthly:   plan.PriceMonthly,
		SetupFee:       plan.SetupFee,
		ContractMonths: plan.ContractMonths,
		TrialDays:      plan.TrialDays,
		Priority:       plan.Priority,
		Features:       features,
		Tags:           tags,
		GatewayPrices:  prices,
		Active:         plan.Active,
		CreatedAt:      plan.CreatedAt,
		UpdatedAt:      plan.UpdatedAt,
	}
}

// NewPlanResponses maps a slice of plans.
func NewPlanResponses(plans []domain.ServicePlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, NewPlanResponse(&plans[i]))
	}
	return out
}
