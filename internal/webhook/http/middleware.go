package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/hookguard/internal/errors"
	"github.com/allisson/hookguard/internal/httputil"
	"github.com/allisson/hookguard/internal/metrics"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// TokenHeader is the request header carrying the webhook bearer token.
const TokenHeader = "X-Webhook-Token"

// AuthenticationMiddleware guards webhook endpoints with bearer token validation.
//
// The middleware:
// 1. Extracts the token from the X-Webhook-Token header
// 2. Validates it via TokenUseCase.Validate (salted digest lookup)
// 3. Stores the authenticated token in the request context
// 4. Runs the downstream chain (rate limiting, handler)
// 5. Records a usage log entry with the downstream outcome
//
// Requests without a valid credential produce no usage record: there is no
// token identity to attribute them to. Once authentication succeeds, every
// outcome is recorded, including rate-limited requests rejected downstream.
//
// Error handling:
//   - Missing or empty header → 401 Unauthorized
//   - Invalid/expired/revoked token, inactive client → 401 Unauthorized
//   - Token store unreachable → 503 Service Unavailable
func AuthenticationMiddleware(
	tokenUseCase webhookUseCase.TokenUseCase,
	usageLogUseCase webhookUseCase.UsageLogUseCase,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken := c.GetHeader(TokenHeader)
		if plainToken == "" {
			logger.Debug("webhook authentication failed: missing token header")
			businessMetrics.RecordAuthOutcome(c.Request.Context(), "missing_token")
			c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "The X-Webhook-Token header is required",
			})
			c.Abort()
			return
		}

		token, err := tokenUseCase.Validate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("webhook authentication failed",
				slog.String("error", err.Error()))
			businessMetrics.RecordAuthOutcome(c.Request.Context(), authFailureOutcome(err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithToken(c.Request.Context(), token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// Usage is recorded after the downstream chain so the entry reflects
		// the request outcome, rate-limited rejections included.
		status := c.Writer.Status()
		success := status < http.StatusBadRequest && len(c.Errors) == 0

		var errorDetail *string
		if !success {
			detail := http.StatusText(status)
			if len(c.Errors) > 0 {
				detail = c.Errors.Last().Error()
			}
			errorDetail = &detail
		}

		if success {
			businessMetrics.RecordAuthOutcome(c.Request.Context(), "allowed")
		}

		recordErr := usageLogUseCase.Record(
			c.Request.Context(),
			token.ID,
			c.ClientIP(),
			c.Request.URL.Path,
			success,
			errorDetail,
		)
		if recordErr != nil {
			// Usage logging never fails the request.
			logger.Warn("failed to record webhook usage",
				slog.String("token_id", token.ID.String()),
				slog.String("error", recordErr.Error()))
		}
	}
}

// authFailureOutcome maps a validation error to a metrics outcome label.
func authFailureOutcome(err error) string {
	if apperrors.Is(err, apperrors.ErrUnavailable) {
		return "storage_unavailable"
	}
	return "invalid_token"
}
