package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// AdminSubscriptionsHandler serves the back-office subscription views.
type AdminSubscriptionsHandler struct {
	service   *service.SubscriptionService
	snapshots SnapshotStore
}

// NewAdminSubscriptionsHandler constructs handler.
func NewAdminSubscriptionsHandler(subscriptionService *service.SubscriptionService, snapshots SnapshotStore) *AdminSubscriptionsHandler {
	return &AdminSubscriptionsHandler{service: subscriptionService, snapshots: snapshots}
}

// List GET /api/admin/subscriptions.
func (h *AdminSubscriptionsHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	query := service.AdminSubscriptionQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Cycle:  c.Query("cycle"),
		Page:   page,
		Limit:  limit,
	}

	return listWithSnapshot(c, h.snapshots, func() (fiber.Map, error) {
		subs, pagination, err := h.service.AdminList(c.UserContext(), query)
		if err != nil {
			return nil, err
		}
		return listEnvelope("subscriptions", dto.NewSubscriptionResponses(subs), pagination), nil
	})
}

// UpdateStatus PATCH /api/admin/subscriptions/:id/status.
func (h *AdminSubscriptionsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.SubscriptionStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	sub, err := h.service.AdminUpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "subscription", dto.NewSubscriptionResponse(sub))
}
