package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/service"
)

// CatalogHandler serves the public plan catalog.
type CatalogHandler struct {
	service *service.PlanService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(planService *service.PlanService) *CatalogHandler {
	return &CatalogHandler{service: planService}
}

// ListPlans GET /api/plans.
func (h *CatalogHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.service.Catalog(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "plans", dto.NewPlanResponses(plans))
}

// GetPlan GET /api/plans/:slug.
func (h *CatalogHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "plan", dto.NewPlanResponse(plan))
}
