package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/service"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// MeHandler serves the authenticated customer's own profile and subscription.
type MeHandler struct {
	authService  *service.AuthService
	subscription *service.SubscriptionService
}

// NewMeHandler constructs handler.
func NewMeHandler(authService *service.AuthService, subscription *service.SubscriptionService) *MeHandler {
	return &MeHandler{authService: authService, subscription: subscription}
}

// Get GET /api/me.
func (h *MeHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return respond(c, fiber.StatusOK, "user", dto.NewUserResponse(principal.User))
}

// Update PUT /api/me.
func (h *MeHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), principal.User.ID, req.Name, req.Phone)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user", dto.NewUserResponse(user))
}

// GetSubscription GET /api/subscription.
func (h *MeHandler) GetSubscription(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	sub, err := h.subscription.GetForCustomer(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "subscription", dto.NewSubscriptionResponse(sub))
}
