package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-proxy/internal/api/dto"
	"github.com/spec-kit/freshdesk-proxy/internal/auth"
	apperrors "github.com/spec-kit/freshdesk-proxy/pkg/util"
)

// TokenHandler issues access tokens for the proxy.
type TokenHandler struct {
	tokens *auth.TokenManager
}

// NewTokenHandler returns a new handler instance.
func NewTokenHandler(tokens *auth.TokenManager) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue POST /token.
func (h *TokenHandler) Issue(c *fiber.Ctx) error {
	token, expiresAt, err := h.tokens.GenerateToken("proxy-client")
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}
