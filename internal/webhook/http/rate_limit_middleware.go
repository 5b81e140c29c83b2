package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hookguard/internal/metrics"
	webhookService "github.com/allisson/hookguard/internal/webhook/service"
)

// RateLimitMiddleware enforces the per-token fixed-window rate limit.
//
// Must run after AuthenticationMiddleware: the limit is keyed by the token
// identity stored in the request context, so two tokens never share a
// counter. Rejected requests carry a Retry-After header with the full window
// length in seconds.
func RateLimitMiddleware(
	limiter webhookService.RateLimiter,
	window time.Duration,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	retryAfter := int(window.Seconds())

	return func(c *gin.Context) {
		token, ok := GetToken(c.Request.Context())
		if !ok || token == nil {
			logger.Debug("rate limit skipped: no authenticated token in context")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authentication is required",
			})
			c.Abort()
			return
		}

		if !limiter.Allow(token.ID) {
			logger.Debug("webhook rate limit exceeded",
				slog.String("token_id", token.ID.String()),
				slog.Int("retry_after", retryAfter))

			businessMetrics.RecordAuthOutcome(c.Request.Context(), "rate_limited")

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many webhook requests for this token. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
