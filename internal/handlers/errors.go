package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/services"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/store"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/traffic"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var rej *services.RejectionError
	switch {
	case errors.As(err, &rej):
		return fail(c, fiber.StatusBadRequest, rej.Message)
	case errors.Is(err, services.ErrValidation), errors.Is(err, traffic.ErrUnknownVehicle):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, voting.ErrSelfVote), errors.Is(err, store.ErrNotAuthor):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrReportNotFound), errors.Is(err, services.ErrCityNotTracked):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, upstream.ErrUpstream), errors.Is(err, upstream.ErrBadStatus), errors.Is(err, upstream.ErrDecode):
		slog.Warn("upstream call failed", "component", "proxy", "path", c.Path(), "error", err,
			"request_id", requestID(c))
		return fail(c, fiber.StatusBadGateway, "Prediction service unavailable, try again shortly")
	}
	slog.Error("request failed", "component", "http", "method", c.Method(), "path", c.Path(), "error", err,
		"request_id", requestID(c))
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
