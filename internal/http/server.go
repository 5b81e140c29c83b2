// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/metrics"
	webhookHTTP "github.com/allisson/hookguard/internal/webhook/http"
)

// RouterConfig holds the handlers and middlewares mounted on the API router.
type RouterConfig struct {
	TokenHandler   *webhookHTTP.TokenHandler
	WebhookHandler *webhookHTTP.WebhookHandler

	// AuthMiddleware validates the X-Webhook-Token header and records usage.
	AuthMiddleware gin.HandlerFunc

	// RateLimitMiddleware enforces the per-token fixed window limit.
	RateLimitMiddleware gin.HandlerFunc

	// AdminKeyMiddleware guards administrative token endpoints.
	AdminKeyMiddleware gin.HandlerFunc

	// IssueRateLimitMiddleware throttles token lifecycle endpoints per client IP.
	IssueRateLimitMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string

	// MetricsProvider enables HTTP metrics collection when non-nil.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string
}

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with all routes and middlewares.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		// Webhook delivery endpoint, guarded by token authentication and rate limiting
		v1.POST("/webhook",
			cfg.AuthMiddleware,
			cfg.RateLimitMiddleware,
			cfg.WebhookHandler.ReceiveWebhookHandler,
		)

		tokens := v1.Group("/webhook/token")
		tokens.Use(cfg.IssueRateLimitMiddleware)
		{
			tokens.POST("/generate", cfg.AdminKeyMiddleware, cfg.TokenHandler.GenerateTokenHandler)
			tokens.POST("/revoke", cfg.AdminKeyMiddleware, cfg.TokenHandler.RevokeTokenHandler)

			// Refresh authenticates with the current token itself, no admin key needed
			tokens.POST("/refresh", cfg.TokenHandler.RefreshTokenHandler)
		}
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
// The database connection is pinged with a short timeout.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
