package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/database"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	subscribers func() int
	ping        func() error
}

func NewHealthHandler(subscribers func() int) *HealthHandler {
	return &HealthHandler{subscribers: subscribers, ping: database.Ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	}
	if h.subscribers != nil {
		resp.Subscribers = h.subscribers()
	}
	return c.JSON(resp)
}
