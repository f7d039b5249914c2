package handlers

import (
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/session"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(session.FromFiber(c))
}
