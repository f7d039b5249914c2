package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/alerts"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard   *services.DashboardService
	defaultCity string
}

func NewDashboardHandler(dashboard *services.DashboardService, defaultCity string) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, defaultCity: defaultCity}
}

func (h *DashboardHandler) city(c *fiber.Ctx) string {
	return c.Query("city", h.defaultCity)
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.dashboard.Dashboard(h.city(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	window, err := alerts.ParseWindow(c.Query("window"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "window must be one of all, 24h, 7d")
	}
	feed, err := h.dashboard.Alerts(h.city(c), window, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

func (h *DashboardHandler) Locations(c *fiber.Ctx) error {
	snap := h.dashboard.Locations()
	locations := snap.Value
	if locations == nil {
		locations = []string{}
	}
	return c.JSON(fiber.Map{
		"locations":  locations,
		"loading":    snap.Loading,
		"updated_at": snap.UpdatedAt,
	})
}
