package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/http/handlers"
	"github.com/auroranet/portal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Auth               *handlers.AuthHandler
	Catalog            *handlers.CatalogHandler
	Me                 *handlers.MeHandler
	Orders             *handlers.OrdersHandler
	Tickets            *handlers.TicketsHandler
	AdminCustomers     *handlers.AdminCustomersHandler
	AdminOrders        *handlers.AdminOrdersHandler
	AdminPlans         *handlers.AdminPlansHandler
	AdminTickets       *handlers.AdminTicketsHandler
	AdminSubscriptions *handlers.AdminSubscriptionsHandler
	AuthMiddleware     *auth.Middleware
	LoginLimiter       fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public catalog.
	api.Get("/plans", cfg.Catalog.ListPlans)
	api.Get("/plans/:slug", cfg.Catalog.GetPlan)

	// Auth. Login and registration share the per-IP throttle.
	authGroup := api.Group("/auth")
	if cfg.LoginLimiter != nil {
		authGroup.Post("/register", cfg.LoginLimiter, cfg.Auth.Register)
		authGroup.Post("/login", cfg.LoginLimiter, cfg.Auth.Login)
	} else {
		authGroup.Post("/register", cfg.Auth.Register)
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	// Customer area.
	customer := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireArea(auth.AreaCustomer))
	customer.Get("/me", cfg.Me.Get)
	customer.Put("/me", cfg.Me.Update)
	customer.Get("/subscription", cfg.Me.GetSubscription)
	customer.Post("/checkout", cfg.Orders.Checkout)
	customer.Get("/orders", cfg.Orders.List)
	customer.Get("/orders/:id", cfg.Orders.Get)
	customer.Post("/tickets", cfg.Tickets.Create)
	customer.Get("/tickets", cfg.Tickets.List)
	customer.Get("/tickets/:id", cfg.Tickets.Get)
	customer.Post("/tickets/:id/messages", cfg.Tickets.AddMessage)

	// Back office. Each area consults the central policy table.
	admin := api.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Get("/customers", auth.RequireArea(auth.AreaAdminCustomers), cfg.AdminCustomers.List)

	admin.Get("/orders", auth.RequireArea(auth.AreaAdminOrders), cfg.AdminOrders.List)
	admin.Patch("/orders/:id/status", auth.RequireArea(auth.AreaAdminOrders), cfg.AdminOrders.UpdateStatus)

	admin.Get("/plans", auth.RequireArea(auth.AreaAdminPlans), cfg.AdminPlans.List)
	admin.Post("/plans", auth.RequireArea(auth.AreaAdminPlans), cfg.AdminPlans.Create)
	admin.Put("/plan/:id/edit", auth.RequireArea(auth.AreaAdminPlans), cfg.AdminPlans.Update)

	admin.Get("/tickets", auth.RequireArea(auth.AreaAdminTickets), cfg.AdminTickets.List)
	admin.Patch("/tickets/:id/status", auth.RequireArea(auth.AreaAdminTickets), cfg.AdminTickets.UpdateStatus)
	admin.Post("/tickets/:id/messages", auth.RequireArea(auth.AreaAdminTickets), cfg.AdminTickets.AddMessage)

	admin.Get("/subscriptions", auth.RequireArea(auth.AreaAdminSubscriptions), cfg.AdminSubscriptions.List)
	admin.Patch("/subscriptions/:id/status", auth.RequireArea(auth.AreaAdminSubscriptions), cfg.AdminSubscriptions.UpdateStatus)
}
