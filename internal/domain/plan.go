package domain

import "time"

// PlanTag values a plan may carry in the catalog.
type PlanTag string

const (
	PlanTagPopular   PlanTag = "popular"
	PlanTagBestValue PlanTag = "best-value"
	PlanTagNew       PlanTag = "new"
	PlanTagPromo     PlanTag = "promo"
	PlanTagBusiness  PlanTag = "business"
	PlanTagFiber     PlanTag = "fiber"
	PlanTagWireless  PlanTag = "wireless"
)

// ValidPlanTag reports whether the tag is part of the fixed enumeration.
func ValidPlanTag(t PlanTag) bool {
	switch t {
	case PlanTagPopular, PlanTagBestValue, PlanTagNew, PlanTagPromo, PlanTagBusiness, PlanTagFiber, PlanTagWireless:
		return true
	}
	return false
}

// SpeedMbps is the advertised down/up pair for a plan.
type SpeedMbps struct {
	Download int `json:"download"`
	Upload   int `json:"upload"`
}

// ServicePlan is a purchasable internet service tier.
type ServicePlan struct {
	ID             string
	Name           string
	Slug           string
	Speed          SpeedMbps
	PriceMonthly   float64
	SetupFee       float64
	ContractMonths int
	TrialDays      int
	Priority       int
	Features       []string
	Tags           []PlanTag
	GatewayPrices  map[string]string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
