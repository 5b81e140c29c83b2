package app

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	webhookHTTP "github.com/allisson/hookguard/internal/webhook/http"
	webhookRepository "github.com/allisson/hookguard/internal/webhook/repository"
	webhookService "github.com/allisson/hookguard/internal/webhook/service"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// TokenService returns the token service for secret generation and hashing.
func (c *Container) TokenService() webhookService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = c.initTokenService()
	})
	return c.tokenService
}

// AdminKeyService returns the admin key service for Argon2id key verification.
func (c *Container) AdminKeyService() webhookService.AdminKeyService {
	c.adminKeyServiceInit.Do(func() {
		c.adminKeyService = c.initAdminKeyService()
	})
	return c.adminKeyService
}

// RateLimiter returns the per-token fixed window rate limiter.
func (c *Container) RateLimiter() webhookService.RateLimiter {
	c.rateLimiterInit.Do(func() {
		c.rateLimiter = c.initRateLimiter()
	})
	return c.rateLimiter
}

// ClientRepository returns the client repository based on database driver.
func (c *Container) ClientRepository() (webhookUseCase.ClientRepository, error) {
	var err error
	c.clientRepositoryInit.Do(func() {
		c.clientRepository, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepository"]; exists {
		return nil, storedErr
	}
	return c.clientRepository, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (webhookUseCase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// UsageLogRepository returns the usage log repository based on database driver.
func (c *Container) UsageLogRepository() (webhookUseCase.UsageLogRepository, error) {
	var err error
	c.usageLogRepositoryInit.Do(func() {
		c.usageLogRepository, err = c.initUsageLogRepository()
		if err != nil {
			c.initErrors["usageLogRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["usageLogRepository"]; exists {
		return nil, storedErr
	}
	return c.usageLogRepository, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (webhookUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// ClientUseCase returns the client use case.
func (c *Container) ClientUseCase() (webhookUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// UsageLogUseCase returns the usage log use case.
func (c *Container) UsageLogUseCase() (webhookUseCase.UsageLogUseCase, error) {
	var err error
	c.usageLogUseCaseInit.Do(func() {
		c.usageLogUseCase, err = c.initUsageLogUseCase()
		if err != nil {
			c.initErrors["usageLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["usageLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.usageLogUseCase, nil
}

// TokenHandler returns the HTTP handler for token lifecycle operations.
func (c *Container) TokenHandler() (*webhookHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// WebhookHandler returns the HTTP handler for webhook deliveries.
func (c *Container) WebhookHandler() *webhookHTTP.WebhookHandler {
	c.webhookHandlerInit.Do(func() {
		c.webhookHandler = webhookHTTP.NewWebhookHandler(c.Logger())
	})
	return c.webhookHandler
}

// initTokenService creates the token service with the configured hashing salt.
func (c *Container) initTokenService() webhookService.TokenService {
	return webhookService.NewTokenService(c.config.TokenHashingSalt)
}

// initAdminKeyService creates the admin key service.
func (c *Container) initAdminKeyService() webhookService.AdminKeyService {
	return webhookService.NewAdminKeyService()
}

// initRateLimiter creates the per-token fixed window limiter.
func (c *Container) initRateLimiter() webhookService.RateLimiter {
	return webhookService.NewFixedWindowLimiter(
		c.config.RateLimitMaxRequests,
		c.config.RateLimitWindow,
	)
}

// initClientRepository creates the client repository based on the database driver.
func (c *Container) initClientRepository() (webhookUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return webhookRepository.NewPostgreSQLClientRepository(db, c.config.DBQueryTimeout), nil
	case "mysql":
		return webhookRepository.NewMySQLClientRepository(db, c.config.DBQueryTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository based on the database driver.
func (c *Container) initTokenRepository() (webhookUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return webhookRepository.NewPostgreSQLTokenRepository(db, c.config.DBQueryTimeout), nil
	case "mysql":
		return webhookRepository.NewMySQLTokenRepository(db, c.config.DBQueryTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUsageLogRepository creates the usage log repository based on the database driver.
func (c *Container) initUsageLogRepository() (webhookUseCase.UsageLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for usage log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return webhookRepository.NewPostgreSQLUsageLogRepository(db, c.config.DBQueryTimeout), nil
	case "mysql":
		return webhookRepository.NewMySQLUsageLogRepository(db, c.config.DBQueryTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (webhookUseCase.TokenUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
	}

	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := webhookUseCase.NewTokenUseCase(
		c.config,
		clientRepository,
		tokenRepository,
		c.TokenService(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return webhookUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initClientUseCase creates the client use case with all its dependencies.
func (c *Container) initClientUseCase() (webhookUseCase.ClientUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	baseUseCase := webhookUseCase.NewClientUseCase(clientRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for client use case: %w", err)
		}
		return webhookUseCase.NewClientUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initUsageLogUseCase creates the usage log use case with all its dependencies.
func (c *Container) initUsageLogUseCase() (webhookUseCase.UsageLogUseCase, error) {
	usageLogRepository, err := c.UsageLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage log repository for usage log use case: %w", err)
	}

	baseUseCase := webhookUseCase.NewUsageLogUseCase(usageLogRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for usage log use case: %w", err)
		}
		return webhookUseCase.NewUsageLogUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*webhookHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return webhookHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}

// issueRateLimitMiddleware builds the per-IP limiter for token lifecycle
// endpoints, or a pass-through when disabled.
func (c *Container) issueRateLimitMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if !c.config.RateLimitIssueEnabled {
		return func(ginCtx *gin.Context) { ginCtx.Next() }
	}

	return webhookHTTP.IssueRateLimitMiddleware(
		c.config.RateLimitIssueRequestsPerSec,
		c.config.RateLimitIssueBurst,
		logger,
	)
}
