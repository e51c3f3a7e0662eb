package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/freshdesk-proxy/pkg/util"
)

const callerKey = "auth_caller"

// AuthMiddleware validates bearer tokens on proxy routes. A caller presents
// either the static proxy token or a JWT minted by the token endpoint.
type AuthMiddleware struct {
	staticToken string
	tokens      *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(staticToken string, tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{staticToken: staticToken, tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return m.unauthorized(c, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return m.unauthorized(c, "invalid authorization header")
	}

	token := parts[1]
	if token == m.staticToken {
		c.Locals(callerKey, "static")
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return m.unauthorized(c, "invalid or missing token")
	}

	c.Locals(callerKey, claims.Subject)
	return c.Next()
}

func (m *AuthMiddleware) unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperrors.NewUnauthorized(message)
}

// CallerFromContext retrieves the authenticated caller identity.
func CallerFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(callerKey)
	if val == nil {
		return "", false
	}
	caller, ok := val.(string)
	return caller, ok
}
