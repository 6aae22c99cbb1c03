package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/auroranet/portal-service/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// PlanInput is a partial plan payload; nil fields were absent from the
// request and are left untouched on update.
type PlanInput struct {
	Name           *string
	Slug           *string
	SpeedDownload  *int
	SpeedUpload    *int
	PriceMonthly   *float64
	SetupFee       *float64
	ContractMonths *int
	TrialDays      *int
	Priority       *int
	Features       *[]string
	Tags           *[]domain.PlanTag
	GatewayPrices  *map[string]string
	Active         *bool
}

// ValidatePlanInput checks every present field and returns the full list of
// violations rather than stopping at the first.
func ValidatePlanInput(input PlanInput, requireAll bool) []string {
	var errs []string

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			errs = append(errs, "Name cannot be empty")
		}
	} else if requireAll {
		errs = append(errs, "Name is required")
	}

	if input.Slug != nil {
		if !slugPattern.MatchString(*input.Slug) {
			errs = append(errs, "Slug must contain only lowercase letters, numbers, and hyphens")
		}
	} else if requireAll {
		errs = append(errs, "Slug is required")
	}

	if input.SpeedDownload != nil {
		if *input.SpeedDownload < 1 || *input.SpeedDownload > 10000 {
			errs = append(errs, "Download speed must be between 1 and 10000 Mbps")
		}
	} else if requireAll {
		errs = append(errs, "Download speed is required")
	}

	if input.SpeedUpload != nil {
		if *input.SpeedUpload < 1 || *input.SpeedUpload > 10000 {
			errs = append(errs, "Upload speed must be between 1 and 10000 Mbps")
		}
	} else if requireAll {
		errs = append(errs, "Upload speed is required")
	}

	if input.PriceMonthly != nil {
		if *input.PriceMonthly < 0 {
			errs = append(errs, "Monthly price cannot be negative")
		}
	} else if requireAll {
		errs = append(errs, "Monthly price is required")
	}

	if input.SetupFee != nil && *input.SetupFee < 0 {
		errs = append(errs, "Setup fee cannot be negative")
	}

	if input.ContractMonths != nil && (*input.ContractMonths < 0 || *input.ContractMonths > 48) {
		errs = append(errs, "Contract length must be between 0 and 48 months")
	}

	if input.TrialDays != nil && (*input.TrialDays < 0 || *input.TrialDays > 30) {
		errs = append(errs, "Trial days must be between 0 and 30")
	}

	if input.Priority != nil && (*input.Priority < 0 || *input.Priority > 11) {
		errs = append(errs, "Priority must be between 0 and 11")
	}

	if input.Tags != nil {
		for _, tag := range *input.Tags {
			if !domain.ValidPlanTag(tag) {
				errs = append(errs, fmt.Sprintf("Unknown tag: %s", tag))
			}
		}
	}

	return errs
}

// applyPlanInput copies present fields onto the plan.
func applyPlanInput(plan *domain.ServicePlan, input PlanInput) {
	if input.Name != nil {
		plan.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		plan.Slug = *input.Slug
	}
	if input.SpeedDownload != nil {
		plan.Speed.Download = *input.SpeedDownload
	}
	if input.SpeedUpload != nil {
		plan.Speed.Upload = *input.SpeedUpload
	}
	if input.PriceMonthly != nil {
		plan.PriceMonthly = *input.PriceMonthly
	}
	if input.SetupFee != nil {
		plan.SetupFee = *input.SetupFee
	}
	if input.ContractMonths != nil {
		plan.ContractMonths = *input.ContractMonths
	}
	if input.TrialDays != nil {
		plan.TrialDays = *input.TrialDays
	}
	if input.Priority != nil {
		plan.Priority = *input.Priority
	}
	if input.Features != nil {
		plan.Features = *input.Features
	}
	if input.Tags != nil {
		plan.Tags = *input.Tags
	}
	if input.GatewayPrices != nil {
		plan.GatewayPrices = *input.GatewayPrices
	}
	if input.Active != nil {
		plan.Active = *input.Active
	}
}
