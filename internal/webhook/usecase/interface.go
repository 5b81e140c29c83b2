// Package usecase defines business logic interfaces for webhook token
// lifecycle, client management, and usage logging.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// ClientRepository defines persistence operations for webhook clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create stores a new client in the repository.
	Create(ctx context.Context, client *webhookDomain.Client) error

	// Update modifies an existing client in the repository.
	Update(ctx context.Context, client *webhookDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error)
}

// TokenRepository defines persistence operations for webhook tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *webhookDomain.Token) error

	// Get retrieves a token by ID. Returns ErrTokenNotFound if not found.
	Get(ctx context.Context, tokenID uuid.UUID) (*webhookDomain.Token, error)

	// GetByTokenHash retrieves a token by its salted digest. Returns
	// ErrTokenNotFound if no token matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*webhookDomain.Token, error)

	// Revoke marks the token revoked at the given instant.
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error

	// UpdateLastUsed overwrites the token's last-used instant.
	UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error

	// DeleteExpired removes tokens that expired before the given instant,
	// returning the affected count. With dryRun it only counts.
	DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// UsageLogRepository defines persistence operations for webhook usage logs.
type UsageLogRepository interface {
	// Create appends a usage log entry.
	Create(ctx context.Context, usageLog *webhookDomain.UsageLog) error

	// DeleteOlderThan removes entries created before the given instant,
	// returning the affected count. With dryRun it only counts.
	DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// TokenUseCase defines the webhook token lifecycle: generation, validation,
// revocation, and refresh.
type TokenUseCase interface {
	// Generate creates a new token for the client with the given lifetime.
	// A non-positive ttl falls back to the configured default expiration.
	//
	// Returns the plain secret exactly once alongside the stored record; only
	// the salted digest is persisted. Returns ErrClientNotFound if the client
	// doesn't exist and ErrClientInactive if it is deactivated.
	Generate(ctx context.Context, clientID uuid.UUID, ttl time.Duration) (*webhookDomain.GenerateTokenOutput, error)

	// Validate checks a plain text secret against stored tokens.
	//
	// Returns the token record when the digest matches a stored token that is
	// not expired, not revoked, and belongs to an active client. Every failure
	// mode returns ErrInvalidToken so callers cannot distinguish a missing
	// token from an expired or revoked one. Storage failures are the one
	// exception and surface as ErrUnavailable.
	//
	// On success the token's last-used instant is updated best-effort.
	Validate(ctx context.Context, plainToken string) (*webhookDomain.Token, error)

	// Revoke marks the token permanently invalid. Revoking an already revoked
	// token succeeds without change. Returns ErrTokenNotFound if the token
	// doesn't exist.
	Revoke(ctx context.Context, tokenID uuid.UUID) error

	// Refresh validates the presented secret, revokes its token, and issues a
	// replacement for the same client. The old token is invalid from the
	// moment revocation is persisted.
	Refresh(ctx context.Context, plainToken string, ttl time.Duration) (*webhookDomain.GenerateTokenOutput, error)

	// CleanupExpired deletes tokens that expired more than the given number of
	// days ago. With dryRun it reports the count without deleting.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

// ClientUseCase defines business logic operations for managing webhook clients.
type ClientUseCase interface {
	// Create registers a new webhook client.
	Create(ctx context.Context, createClientInput *webhookDomain.CreateClientInput) (*webhookDomain.Client, error)

	// Update modifies an existing client's name and active status.
	// Returns ErrClientNotFound if the client doesn't exist.
	Update(ctx context.Context, clientID uuid.UUID, updateClientInput *webhookDomain.UpdateClientInput) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error)

	// Deactivate performs a soft delete by setting IsActive to false. Tokens
	// of a deactivated client fail validation while their records remain.
	Deactivate(ctx context.Context, clientID uuid.UUID) error
}

// UsageLogUseCase defines operations for recording and pruning webhook usage.
type UsageLogUseCase interface {
	// Record appends a usage log entry for an authenticated webhook request.
	Record(ctx context.Context, tokenID uuid.UUID, ipAddress, endpointPath string, success bool, errorDetail *string) error

	// CleanupOlderThan deletes entries older than the given number of days.
	// With dryRun it reports the count without deleting.
	CleanupOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
