package middleware

import (
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func unauthorized(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}

func attachSession(c *fiber.Ctx) error {
	token, _ := c.Locals(session.TokenKey).(*jwt.Token)
	uid, err := session.UserID(token)
	if err != nil {
		return unauthorized(c, err)
	}
	session.Attach(c, session.Authenticated(uid))
	return c.Next()
}

func sessionConfig(cfg *config.Config) jwtware.Config {
	return jwtware.Config{
		SigningKey:     jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.SessionSecret)},
		ContextKey:     session.TokenKey,
		SuccessHandler: attachSession,
		ErrorHandler:   unauthorized,
	}
}

// RequireSession rejects requests without a valid identity token.
func RequireSession(cfg *config.Config) fiber.Handler {
	return jwtware.New(sessionConfig(cfg))
}

// OptionalSession validates a token when one is sent and otherwise lets the
// request through as anonymous. A bad token is still rejected.
func OptionalSession(cfg *config.Config) fiber.Handler {
	c := sessionConfig(cfg)
	c.Filter = func(ctx *fiber.Ctx) bool {
		return ctx.Get(fiber.HeaderAuthorization) == ""
	}
	return jwtware.New(c)
}
