package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auroranet/portal-service/internal/domain"
)

func TestPolicyTableRoleAccess(t *testing.T) {
	tests := []struct {
		name    string
		area    Area
		role    domain.Role
		allowed bool
	}{
		{"customer enters customer area", AreaCustomer, domain.RoleCustomer, true},
		{"visitor blocked from customer area", AreaCustomer, domain.RoleVisitor, false},
		{"customer blocked from admin customers", AreaAdminCustomers, domain.RoleCustomer, false},
		{"support reads customer directory", AreaAdminCustomers, domain.RoleSupport, true},
		{"tech blocked from customer directory", AreaAdminCustomers, domain.RoleTech, false},
		{"tech manages orders", AreaAdminOrders, domain.RoleTech, true},
		{"support blocked from orders", AreaAdminOrders, domain.RoleSupport, false},
		{"ops manages plans", AreaAdminPlans, domain.RoleOps, true},
		{"support blocked from plans", AreaAdminPlans, domain.RoleSupport, false},
		{"tech works tickets", AreaAdminTickets, domain.RoleTech, true},
		{"support works tickets", AreaAdminTickets, domain.RoleSupport, true},
		{"support manages subscriptions", AreaAdminSubscriptions, domain.RoleSupport, true},
		{"tech blocked from subscriptions", AreaAdminSubscriptions, domain.RoleTech, false},
		{"admin enters every area", AreaAdminPlans, domain.RoleAdmin, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := AllowedRoles(tc.area)[tc.role]
			assert.Equal(t, tc.allowed, ok)
		})
	}
}

func TestEveryAreaAdmitsAdmin(t *testing.T) {
	for area := range policy {
		_, ok := AllowedRoles(area)[domain.RoleAdmin]
		assert.True(t, ok, "area %s must admit admin", area)
	}
}
