package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// AdminOrdersHandler serves the back-office order views.
type AdminOrdersHandler struct {
	service   *service.OrderService
	snapshots SnapshotStore
}

// NewAdminOrdersHandler constructs handler.
func NewAdminOrdersHandler(orderService *service.OrderService, snapshots SnapshotStore) *AdminOrdersHandler {
	return &AdminOrdersHandler{service: orderService, snapshots: snapshots}
}

// List GET /api/admin/orders.
func (h *AdminOrdersHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	query := service.AdminOrderQuery{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Page:          page,
		Limit:         limit,
	}

	return listWithSnapshot(c, h.snapshots, func() (fiber.Map, error) {
		orders, pagination, err := h.service.AdminList(c.UserContext(), query)
		if err != nil {
			return nil, err
		}
		return listEnvelope("orders", dto.NewOrderResponses(orders), pagination), nil
	})
}

// UpdateStatus PATCH /api/admin/orders/:id/status.
func (h *AdminOrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	order, err := h.service.AdminUpdateStatus(c.UserContext(), c.Params("id"), service.AdminUpdateStatusInput{
		Status:       req.Status,
		Installation: req.Installation,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "order", dto.NewOrderResponse(order))
}
