package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/database"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/logging"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/poller"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/realtime"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/routes"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/services"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/store"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.WithDatabase(cfg.AppEnv, database.DB)

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()

	// Services
	client := upstream.NewClient(cfg.UpstreamAPIURL, cfg.UpstreamTimeout)
	broker := realtime.NewBroker[[]models.Report]()
	reportService := services.NewReportService(
		store.NewGormStore(database.DB),
		services.NewModerationService(),
		broker,
	)
	reportService.Prime(ctx)

	dashboardService := services.NewDashboardService(
		client,
		store.NewGormSnapshotStore(database.DB),
		cfg.PollCities,
		cfg.PollInterval,
	)
	if err := dashboardService.Warm(ctx); err != nil {
		slog.Warn("could not restore prediction snapshots", "component", "dashboard", "error", err)
	}
	routingService := services.NewRoutingService(client)

	// Pollers
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		if err := poller.RunAll(ctx, dashboardService.Runners()...); err != nil {
			slog.Error("pollers stopped", "component", "poller", "error", err)
		}
	}()
	slog.Info("pollers started", "cities", cfg.PollCities, "interval", cfg.PollInterval.String())

	// Handlers
	healthHandler := handlers.NewHealthHandler(broker.Subscribers)
	sessionHandler := handlers.NewSessionHandler()
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.DefaultCity)
	proxyHandler := handlers.NewProxyHandler(client, routingService, cfg.DefaultCity)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, healthHandler, sessionHandler, reportHandler, dashboardHandler, proxyHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	stopPolling()
	<-pollDone
	broker.Close()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "component", "http", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
