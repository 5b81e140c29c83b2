package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hookguard/internal/webhook/http/dto"
)

// WebhookHandler handles authenticated webhook deliveries.
type WebhookHandler struct {
	logger *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{logger: logger}
}

// ReceiveWebhookHandler accepts a webhook delivery that passed the
// authentication gate and the per-token rate limit.
// POST /v1/webhook - Requires a valid X-Webhook-Token.
func (h *WebhookHandler) ReceiveWebhookHandler(c *gin.Context) {
	token, ok := GetToken(c.Request.Context())
	if !ok || token == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "Authentication is required",
		})
		return
	}

	h.logger.Debug("webhook accepted",
		slog.String("token_id", token.ID.String()),
		slog.String("client_id", token.ClientID.String()))

	c.JSON(http.StatusOK, dto.WebhookAcceptedResponse{
		Status:     "accepted",
		ReceivedAt: time.Now().UTC(),
	})
}
