package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenKey is where the JWT middleware stores the parsed token.
	TokenKey   = "user"
	sessionKey = "session"
)

var (
	ErrNoToken      = errors.New("invalid token in context")
	ErrInvalidClaim = errors.New("invalid claims")
	ErrMissingSub   = errors.New("missing sub claim")
)

// UserID extracts the opaque user id from the token's sub claim.
func UserID(token *jwt.Token) (string, error) {
	if token == nil {
		return "", ErrNoToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidClaim
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrMissingSub
	}
	return sub, nil
}

// Attach stores s on the request.
func Attach(c *fiber.Ctx, s Session) {
	c.Locals(sessionKey, s)
}

// FromFiber returns the request's session. A request the session middleware
// never saw is anonymous.
func FromFiber(c *fiber.Ctx) Session {
	if s, ok := c.Locals(sessionKey).(Session); ok {
		return s
	}
	if token, ok := c.Locals(TokenKey).(*jwt.Token); ok {
		if uid, err := UserID(token); err == nil {
			return Authenticated(uid)
		}
	}
	return Anonymous()
}
