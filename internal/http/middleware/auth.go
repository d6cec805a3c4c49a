package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stallhub/internal/auth"
	"stallhub/internal/model"
)

// PrincipalLocalKey is the Fiber locals key holding the authenticated model.Principal.
const PrincipalLocalKey = "principal"

// TokenParser validates a bearer token. *auth.TokenIssuer implements it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate resolves the bearer token, when one is sent, into a principal.
// Requests without a token continue anonymously; a bad token is rejected.
func Authenticate(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "malformed authorization header")
		}
		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
		}
		c.Locals(PrincipalLocalKey, claims.Principal())
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPrincipal(c).Anonymous() {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		return c.Next()
	}
}

// RequireSuperAdmin rejects everyone but super admins.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.Anonymous() {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		if !p.IsSuperAdmin() {
			return WriteError(c, fiber.StatusForbidden, "FORBIDDEN", "super admin only")
		}
		return c.Next()
	}
}

// GetPrincipal returns the caller, or the zero (anonymous) principal.
func GetPrincipal(c *fiber.Ctx) model.Principal {
	p, _ := c.Locals(PrincipalLocalKey).(model.Principal)
	return p
}
