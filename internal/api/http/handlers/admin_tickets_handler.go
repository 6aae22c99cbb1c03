package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// AdminTicketsHandler serves the back-office support queue.
type AdminTicketsHandler struct {
	service   *service.TicketService
	snapshots SnapshotStore
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService, snapshots SnapshotStore) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService, snapshots: snapshots}
}

// List GET /api/admin/tickets.
func (h *AdminTicketsHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	query := service.AdminTicketQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Page:     page,
		Limit:    limit,
	}

	return listWithSnapshot(c, h.snapshots, func() (fiber.Map, error) {
		tickets, pagination, err := h.service.AdminList(c.UserContext(), query)
		if err != nil {
			return nil, err
		}
		return listEnvelope("tickets", dto.NewTicketResponses(tickets), pagination), nil
	})
}

// UpdateStatus PATCH /api/admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.TicketStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	ticket, err := h.service.AdminUpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ticket", dto.NewTicketResponse(ticket))
}

// AddMessage POST /api/admin/tickets/:id/messages.
func (h *AdminTicketsHandler) AddMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	msg, err := h.service.AddMessage(c.UserContext(), principal.User, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "message", dto.NewTicketMessageResponse(msg))
}
