package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/metrics"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for token generation operations.
func (t *tokenUseCaseWithMetrics) Generate(
	ctx context.Context,
	clientID uuid.UUID,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Generate(ctx, clientID, ttl)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "webhook", "token_generate", status)
	t.metrics.RecordDuration(ctx, "webhook", "token_generate", time.Since(start), status)

	return output, err
}

// Validate records metrics for token validation operations.
func (t *tokenUseCaseWithMetrics) Validate(ctx context.Context, plainToken string) (*webhookDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Validate(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "webhook", "token_validate", status)
	t.metrics.RecordDuration(ctx, "webhook", "token_validate", time.Since(start), status)

	return token, err
}

// Revoke records metrics for token revocation operations.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	start := time.Now()
	err := t.next.Revoke(ctx, tokenID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "webhook", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "webhook", "token_revoke", time.Since(start), status)

	return err
}

// Refresh records metrics for token refresh operations.
func (t *tokenUseCaseWithMetrics) Refresh(
	ctx context.Context,
	plainToken string,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Refresh(ctx, plainToken, ttl)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "webhook", "token_refresh", status)
	t.metrics.RecordDuration(ctx, "webhook", "token_refresh", time.Since(start), status)

	return output, err
}

// CleanupExpired records metrics for expired token cleanup operations.
func (t *tokenUseCaseWithMetrics) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx, days, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "webhook", "token_cleanup", status)
	t.metrics.RecordDuration(ctx, "webhook", "token_cleanup", time.Since(start), status)

	return count, err
}

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for client creation operations.
func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	createClientInput *webhookDomain.CreateClientInput,
) (*webhookDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Create(ctx, createClientInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "webhook", "client_create", status)
	c.metrics.RecordDuration(ctx, "webhook", "client_create", time.Since(start), status)

	return client, err
}

// Update records metrics for client update operations.
func (c *clientUseCaseWithMetrics) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *webhookDomain.UpdateClientInput,
) error {
	start := time.Now()
	err := c.next.Update(ctx, clientID, updateClientInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "webhook", "client_update", status)
	c.metrics.RecordDuration(ctx, "webhook", "client_update", time.Since(start), status)

	return err
}

// Get records metrics for client retrieval operations.
func (c *clientUseCaseWithMetrics) Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, clientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "webhook", "client_get", status)
	c.metrics.RecordDuration(ctx, "webhook", "client_get", time.Since(start), status)

	return client, err
}

// Deactivate records metrics for client deactivation operations.
func (c *clientUseCaseWithMetrics) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	start := time.Now()
	err := c.next.Deactivate(ctx, clientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "webhook", "client_deactivate", status)
	c.metrics.RecordDuration(ctx, "webhook", "client_deactivate", time.Since(start), status)

	return err
}

// usageLogUseCaseWithMetrics decorates UsageLogUseCase with metrics instrumentation.
type usageLogUseCaseWithMetrics struct {
	next    UsageLogUseCase
	metrics metrics.BusinessMetrics
}

// NewUsageLogUseCaseWithMetrics wraps a UsageLogUseCase with metrics recording.
func NewUsageLogUseCaseWithMetrics(useCase UsageLogUseCase, m metrics.BusinessMetrics) UsageLogUseCase {
	return &usageLogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for usage log creation operations.
func (u *usageLogUseCaseWithMetrics) Record(
	ctx context.Context,
	tokenID uuid.UUID,
	ipAddress, endpointPath string,
	success bool,
	errorDetail *string,
) error {
	start := time.Now()
	err := u.next.Record(ctx, tokenID, ipAddress, endpointPath, success, errorDetail)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "webhook", "usage_log_record", status)
	u.metrics.RecordDuration(ctx, "webhook", "usage_log_record", time.Since(start), status)

	return err
}

// CleanupOlderThan records metrics for usage log cleanup operations.
func (u *usageLogUseCaseWithMetrics) CleanupOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := u.next.CleanupOlderThan(ctx, days, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "webhook", "usage_log_cleanup", status)
	u.metrics.RecordDuration(ctx, "webhook", "usage_log_cleanup", time.Since(start), status)

	return count, err
}
