package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// TicketsHandler manages customer support endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	ticket, err := h.service.Create(c.UserContext(), principal.User.ID, service.TicketCreateInput{
		Subject:  req.Subject,
		Category: req.Category,
		Priority: req.Priority,
		Body:     req.Body,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "ticket", dto.NewTicketResponse(ticket))
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	page, limit := pageQuery(c)
	tickets, pagination, err := h.service.ListForCustomer(c.UserContext(), principal.User.ID, page, limit)
	if err != nil {
		return err
	}
	return respondList(c, "tickets", dto.NewTicketResponses(tickets), pagination)
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, messages, err := h.service.GetForCustomer(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ticket", dto.NewTicketDetailResponse(ticket, messages))
}

// AddMessage POST /api/tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
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
