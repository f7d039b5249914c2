package routes

import (
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	sessionHandler *handlers.SessionHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	proxyHandler *handlers.ProxyHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(middleware.RateLimit(60))

	api.Get("/health", healthHandler.Check)
	api.Get("/session", middleware.OptionalSession(cfg), sessionHandler.Current)

	// Community reports. The stream is registered before /:id routes.
	reports := api.Group("/reports")
	reports.Get("/", reportHandler.List)
	reports.Get("/stream", reportHandler.Stream)
	reports.Get("/route", reportHandler.ForRoute)

	// Report writes: 20 req/min per IP, session required
	writes := middleware.RateLimit(20)
	auth := middleware.RequireSession(cfg)
	reports.Post("/", writes, auth, reportHandler.Create)
	reports.Post("/:id/upvote", writes, auth, reportHandler.Upvote)
	reports.Post("/:id/downvote", writes, auth, reportHandler.Downvote)
	reports.Delete("/:id", writes, auth, reportHandler.Delete)

	// Cached poll results
	api.Get("/dashboard", dashboardHandler.Dashboard)
	api.Get("/alerts", dashboardHandler.Alerts)
	api.Get("/locations", dashboardHandler.Locations)

	// Upstream pass-through
	api.Post("/routes", proxyHandler.Route)
	api.Post("/routes/analyze", proxyHandler.AnalyzeRoutes)
	api.Post("/simulate", proxyHandler.Simulate)
	api.Post("/stations", proxyHandler.Stations)
	api.Get("/community/feed", proxyHandler.CommunityFeed)
	api.Post("/community/report", proxyHandler.CommunityReport)
}
