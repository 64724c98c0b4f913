package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber.Ctx locals key under which validated claims
// are stored for downstream handlers.
const ClaimsKey = "auth"

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	service *Service
}

func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate rejects requests without a valid "Bearer <token>" header.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return errorRegistry.New(ErrInvalidToken)
		}

		claims, err := m.service.Validate(parts[1])
		if err != nil {
			return err
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by Authenticate, or nil when
// the route is unauthenticated.
func ClaimsFromCtx(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(ClaimsKey).(*Claims)
	return claims
}
