// Package http provides HTTP handlers for webhook token lifecycle operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/httputil"
	customValidation "github.com/allisson/hookguard/internal/validation"
	"github.com/allisson/hookguard/internal/webhook/http/dto"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// TokenHandler handles HTTP requests for webhook token lifecycle operations.
type TokenHandler struct {
	tokenUseCase webhookUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase webhookUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// GenerateTokenHandler issues a new webhook token for a client.
// POST /v1/webhook/token/generate - Requires the administrative API key.
// Returns 201 Created with the plain token and expiration time.
func (h *TokenHandler) GenerateTokenHandler(c *gin.Context) {
	var req dto.GenerateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ttl := time.Duration(req.ExpiresInSeconds) * time.Second

	output, err := h.tokenUseCase.Generate(c.Request.Context(), clientID, ttl)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGenerateTokenToResponse(output))
}

// RefreshTokenHandler rotates the webhook token presented in the
// X-Webhook-Token header: the old token is revoked and a replacement issued
// for the same client.
// POST /v1/webhook/token/refresh - Authenticated by the token being rotated.
// Returns 201 Created with the replacement token.
func (h *TokenHandler) RefreshTokenHandler(c *gin.Context) {
	plainToken := c.GetHeader(TokenHeader)
	if plainToken == "" {
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "unauthorized",
			Message: "The X-Webhook-Token header is required",
		})
		return
	}

	var req dto.RefreshTokenRequest
	// The body is optional; an empty body keeps the default lifetime.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		if err := req.Validate(); err != nil {
			httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
			return
		}
	}

	ttl := time.Duration(req.ExpiresInSeconds) * time.Second

	output, err := h.tokenUseCase.Refresh(c.Request.Context(), plainToken, ttl)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGenerateTokenToResponse(output))
}

// RevokeTokenHandler permanently invalidates a webhook token by ID.
// POST /v1/webhook/token/revoke - Requires the administrative API key.
// Returns 204 No Content; revoking an already revoked token also succeeds.
func (h *TokenHandler) RevokeTokenHandler(c *gin.Context) {
	var req dto.RevokeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tokenID, err := uuid.Parse(req.TokenID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), tokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
