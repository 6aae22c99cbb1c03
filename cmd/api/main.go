package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/auroranet/portal-service/internal/api/http"
	"github.com/auroranet/portal-service/internal/api/http/handlers"
	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/cache"
	"github.com/auroranet/portal-service/internal/config"
	"github.com/auroranet/portal-service/internal/events"
	"github.com/auroranet/portal-service/internal/observability"
	"github.com/auroranet/portal-service/internal/persistence"
	"github.com/auroranet/portal-service/internal/repository"
	"github.com/auroranet/portal-service/internal/service"
	"github.com/auroranet/portal-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	sessions := auth.NewSessionStore(rds.Client, cfg.Auth.SessionTTL())
	snapshots := cache.NewStore(rds.Client, cfg.Cache.SnapshotMaxAge())

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	planService := service.NewPlanService(planRepo)
	subscriptionService := service.NewSubscriptionService(service.SubscriptionDependencies{
		SubscriptionRepo: subscriptionRepo,
		PlanRepo:         planRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:     orderRepo,
		PlanRepo:      planRepo,
		UserRepo:      userRepo,
		Subscriptions: subscriptionService,
		Dispatcher:    dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	customerService := service.NewCustomerService(userRepo)
	notificationService := service.NewNotificationService(cfg, logger)

	worker.StartNotificationWorker(notificationService, dispatcher)

	authMiddleware := auth.NewMiddleware(sessions, userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(pg, cfg.App.Version),
		Auth:               handlers.NewAuthHandler(authService),
		Catalog:            handlers.NewCatalogHandler(planService),
		Me:                 handlers.NewMeHandler(authService, subscriptionService),
		Orders:             handlers.NewOrdersHandler(orderService),
		Tickets:            handlers.NewTicketsHandler(ticketService),
		AdminCustomers:     handlers.NewAdminCustomersHandler(customerService, snapshots),
		AdminOrders:        handlers.NewAdminOrdersHandler(orderService, snapshots),
		AdminPlans:         handlers.NewAdminPlansHandler(planService, snapshots),
		AdminTickets:       handlers.NewAdminTicketsHandler(ticketService, snapshots),
		AdminSubscriptions: handlers.NewAdminSubscriptionsHandler(subscriptionService, snapshots),
		AuthMiddleware:     authMiddleware,
		LoginLimiter:       httptransport.LoginRateLimiter(rds.Client, cfg.Auth.LoginRatePerMinute),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
