package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/domain"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// Area names a guarded section of the portal.
type Area string

const (
	AreaCustomer           Area = "customer"
	AreaAdminCustomers     Area = "admin_customers"
	AreaAdminOrders        Area = "admin_orders"
	AreaAdminPlans         Area = "admin_plans"
	AreaAdminTickets       Area = "admin_tickets"
	AreaAdminSubscriptions Area = "admin_subscriptions"
)

// policy is the single authorization table consulted by every guard.
var policy = map[Area][]domain.Role{
	AreaCustomer:           {domain.RoleCustomer, domain.RoleTech, domain.RoleSupport, domain.RoleOps, domain.RoleAdmin},
	AreaAdminCustomers:     {domain.RoleSupport, domain.RoleOps, domain.RoleAdmin},
	AreaAdminOrders:        {domain.RoleTech, domain.RoleOps, domain.RoleAdmin},
	AreaAdminPlans:         {domain.RoleOps, domain.RoleAdmin},
	AreaAdminTickets:       {domain.RoleTech, domain.RoleSupport, domain.RoleOps, domain.RoleAdmin},
	AreaAdminSubscriptions: {domain.RoleSupport, domain.RoleOps, domain.RoleAdmin},
}

// AllowedRoles returns the role set permitted into an area.
func AllowedRoles(area Area) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(policy[area]))
	for _, role := range policy[area] {
		set[role] = struct{}{}
	}
	return set
}

// RequireArea ensures the principal's role is allowed into the area and the
// account is active.
func RequireArea(area Area) fiber.Handler {
	allowed := AllowedRoles(area)

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.Status != domain.UserStatusActive {
			return apperrors.NewForbidden("account not active")
		}
		if _, exists := allowed[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
