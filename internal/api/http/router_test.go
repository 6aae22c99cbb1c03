package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/auroranet/portal-service/internal/api/http/handlers"
	"github.com/auroranet/portal-service/internal/auth"
)

func registeredRoutes(app *fiber.App) map[string]bool {
	routes := map[string]bool{}
	for _, stack := range app.Stack() {
		for _, route := range stack {
			routes[route.Method+" "+route.Path] = true
		}
	}
	return routes
}

func TestRegisterRoutesTable(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, RouteConfig{
		Health:             &handlers.HealthHandler{},
		Auth:               &handlers.AuthHandler{},
		Catalog:            &handlers.CatalogHandler{},
		Me:                 &handlers.MeHandler{},
		Orders:             &handlers.OrdersHandler{},
		Tickets:            &handlers.TicketsHandler{},
		AdminCustomers:     &handlers.AdminCustomersHandler{},
		AdminOrders:        &handlers.AdminOrdersHandler{},
		AdminPlans:         &handlers.AdminPlansHandler{},
		AdminTickets:       &handlers.AdminTicketsHandler{},
		AdminSubscriptions: &handlers.AdminSubscriptionsHandler{},
		AuthMiddleware:     &auth.Middleware{},
	})

	routes := registeredRoutes(app)
	for _, want := range []string{
		"GET /health/live",
		"GET /health/ready",
		"GET /api/plans",
		"GET /api/plans/:slug",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"POST /api/auth/password/reset/request",
		"POST /api/auth/password/reset/confirm",
		"POST /api/auth/password/change",
		"GET /api/me",
		"PUT /api/me",
		"GET /api/subscription",
		"POST /api/checkout",
		"GET /api/orders",
		"GET /api/orders/:id",
		"POST /api/tickets",
		"GET /api/tickets",
		"GET /api/tickets/:id",
		"POST /api/tickets/:id/messages",
		"GET /api/admin/customers",
		"GET /api/admin/orders",
		"PATCH /api/admin/orders/:id/status",
		"GET /api/admin/plans",
		"POST /api/admin/plans",
		"PUT /api/admin/plan/:id/edit",
		"GET /api/admin/tickets",
		"PATCH /api/admin/tickets/:id/status",
		"POST /api/admin/tickets/:id/messages",
		"GET /api/admin/subscriptions",
		"PATCH /api/admin/subscriptions/:id/status",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	// plan edit lives under the singular path
	assert.False(t, routes["PUT /api/admin/plans/:id/edit"])
}
