package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// AdminPlansHandler serves the back-office plan management endpoints.
type AdminPlansHandler struct {
	service   *service.PlanService
	snapshots SnapshotStore
}

// NewAdminPlansHandler constructs handler.
func NewAdminPlansHandler(planService *service.PlanService, snapshots SnapshotStore) *AdminPlansHandler {
	return &AdminPlansHandler{service: planService, snapshots: snapshots}
}

// List GET /api/admin/plans.
func (h *AdminPlansHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	query := service.AdminPlanQuery{
		Search: c.Query("search"),
		Active: c.Query("active"),
		Tag:    c.Query("tag"),
		Page:   page,
		Limit:  limit,
	}

	return listWithSnapshot(c, h.snapshots, func() (fiber.Map, error) {
		plans, pagination, err := h.service.AdminList(c.UserContext(), query)
		if err != nil {
			return nil, err
		}
		return listEnvelope("plans", dto.NewPlanResponses(plans), pagination), nil
	})
}

// Create POST /api/admin/plans.
func (h *AdminPlansHandler) Create(c *fiber.Ctx) error {
	var req dto.PlanPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	plan, err := h.service.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "plan", dto.NewPlanResponse(plan))
}

// Update PUT /api/admin/plan/:id/edit. Absent fields are left untouched.
func (h *AdminPlansHandler) Update(c *fiber.Ctx) error {
	var req dto.PlanPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	plan, err := h.service.Update(c.UserContext(), c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "plan", dto.NewPlanResponse(plan))
}
