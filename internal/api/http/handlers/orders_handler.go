package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// OrdersHandler manages customer order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// Checkout POST /api/checkout.
func (h *OrdersHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if strings.TrimSpace(req.PlanSlug) == "" {
		return apperrors.NewValidationError("Plan slug is required")
	}

	order, err := h.service.Checkout(c.UserContext(), principal.User.ID, req.PlanSlug)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "order", dto.NewOrderResponse(order))
}

// List GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	page, limit := pageQuery(c)
	orders, pagination, err := h.service.ListForCustomer(c.UserContext(), principal.User.ID, page, limit)
	if err != nil {
		return err
	}
	return respondList(c, "orders", dto.NewOrderResponses(orders), pagination)
}

// Get GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	order, err := h.service.GetForCustomer(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "order", dto.NewOrderResponse(order))
}
