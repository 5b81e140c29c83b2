package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	webhookService "github.com/allisson/hookguard/internal/webhook/service"
)

// AdminKeyHeader is the request header carrying the administrative API key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware guards token lifecycle endpoints with the administrative
// API key. The key is verified against its Argon2id hash from configuration;
// the plain key is never stored or logged.
//
// An empty configured hash disables the admin surface entirely: every request
// is rejected until an ADMIN_API_KEY_HASH is provisioned.
func AdminKeyMiddleware(
	adminKeyService webhookService.AdminKeyService,
	adminKeyHash string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKeyHash == "" {
			logger.Warn("admin endpoint rejected: no admin key hash configured")
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Administrative endpoints are disabled",
			})
			c.Abort()
			return
		}

		plainKey := c.GetHeader(AdminKeyHeader)
		if plainKey == "" {
			logger.Debug("admin authentication failed: missing key header")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "The X-Admin-Key header is required",
			})
			c.Abort()
			return
		}

		if !adminKeyService.VerifyKey(plainKey, adminKeyHash) {
			logger.Debug("admin authentication failed: key mismatch")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid administrative API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
