package handlers

import (
	"context"
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/services"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"
	"github.com/gofiber/fiber/v2"
)

// ProxyClient is the pass-through half of the upstream client.
type ProxyClient interface {
	Simulate(ctx context.Context, req upstream.SimulateRequest) (*upstream.SimulateResponse, error)
	Stations(ctx context.Context, req upstream.StationsRequest) (*upstream.StationsResponse, error)
	CommunityFeed(ctx context.Context, location string) (*upstream.CommunityFeed, error)
	SubmitCommunityReport(ctx context.Context, req upstream.CommunityReportRequest) (*upstream.CommunityReportResponse, error)
}

type ProxyHandler struct {
	client      ProxyClient
	routing     *services.RoutingService
	defaultCity string
}

func NewProxyHandler(client ProxyClient, routing *services.RoutingService, defaultCity string) *ProxyHandler {
	return &ProxyHandler{client: client, routing: routing, defaultCity: defaultCity}
}

func (h *ProxyHandler) Route(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	plan, err := h.routing.Route(c.UserContext(), upstream.RouteRequest{
		Start:       req.Start,
		Destination: req.Destination,
	}, req.Vehicle)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *ProxyHandler) AnalyzeRoutes(c *fiber.Ctx) error {
	var req dto.AnalyzeRoutesRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	pref := req.UserPreference
	if pref == "" {
		pref = c.Query("user_preference", "Fastest route")
	}
	plan, err := h.routing.Analyze(c.UserContext(), upstream.AnalyzeRoutesRequest{
		Start:          req.Start,
		Destination:    req.Destination,
		SourceName:     req.SourceName,
		DestName:       req.DestName,
		UserPreference: pref,
	}, req.Vehicle)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *ProxyHandler) Simulate(c *fiber.Ctx) error {
	var req upstream.SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Scenario == "" {
		return fail(c, fiber.StatusBadRequest, "scenario is required")
	}
	if req.Location == "" {
		req.Location = h.defaultCity
	}
	if req.Intensity == 0 {
		req.Intensity = 1.0
	}
	resp, err := h.client.Simulate(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProxyHandler) Stations(c *fiber.Ctx) error {
	var req upstream.StationsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Start == nil || req.Destination == nil {
		return fail(c, fiber.StatusBadRequest, "start and destination are required")
	}
	resp, err := h.client.Stations(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProxyHandler) CommunityFeed(c *fiber.Ctx) error {
	feed, err := h.client.CommunityFeed(c.UserContext(), c.Query("location", h.defaultCity))
	if err != nil {
		return respondError(c, err)
	}
	if feed.Reports == nil {
		feed.Reports = []json.RawMessage{}
	}
	return c.JSON(feed)
}

func (h *ProxyHandler) CommunityReport(c *fiber.Ctx) error {
	var req upstream.CommunityReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Feedback == "" {
		return fail(c, fiber.StatusBadRequest, "feedback is required")
	}
	if req.Location == "" {
		req.Location = h.defaultCity
	}
	if req.Severity == "" {
		req.Severity = "Moderate"
	}
	resp, err := h.client.SubmitCommunityReport(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
