// Package usecase implements business logic orchestration for webhook token security.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/config"
	apperrors "github.com/allisson/hookguard/internal/errors"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
	webhookService "github.com/allisson/hookguard/internal/webhook/service"
)

// tokenUseCase implements TokenUseCase for the webhook token lifecycle.
type tokenUseCase struct {
	config       *config.Config
	clientRepo   ClientRepository
	tokenRepo    TokenRepository
	tokenService webhookService.TokenService
	logger       *slog.Logger
}

// Generate creates a new webhook token for the given client.
//
// The plain secret is returned exactly once; only the salted digest is
// persisted. A non-positive ttl falls back to Config.TokenExpiration.
func (t *tokenUseCase) Generate(
	ctx context.Context,
	clientID uuid.UUID,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if !client.IsActive {
		return nil, webhookDomain.ErrClientInactive
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = t.config.TokenExpiration
	}

	now := time.Now().UTC()
	token := &webhookDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  client.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &webhookDomain.GenerateTokenOutput{
		PlainToken: plainToken,
		Token:      token,
	}, nil
}

// Validate checks a plain text secret against stored tokens.
//
// Every rejection returns ErrInvalidToken so a caller cannot distinguish a
// missing token from an expired or revoked one. Storage failures are the one
// exception: they surface as ErrUnavailable so the gate can answer with a
// server error instead of denying a possibly valid credential.
func (t *tokenUseCase) Validate(ctx context.Context, plainToken string) (*webhookDomain.Token, error) {
	if plainToken == "" {
		return nil, webhookDomain.ErrInvalidToken
	}

	tokenHash := t.tokenService.HashToken(plainToken)

	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, webhookDomain.ErrTokenNotFound) {
			return nil, webhookDomain.ErrInvalidToken
		}
		return nil, err
	}

	now := time.Now().UTC()

	if token.Expired(now) {
		return nil, webhookDomain.ErrInvalidToken
	}

	if token.Revoked() {
		return nil, webhookDomain.ErrInvalidToken
	}

	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		if errors.Is(err, webhookDomain.ErrClientNotFound) {
			return nil, webhookDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, webhookDomain.ErrInvalidToken
	}

	// Best effort: a failed freshness update never rejects a valid credential.
	if err := t.tokenRepo.UpdateLastUsed(ctx, token.ID, now); err != nil {
		t.logger.Warn("failed to update token last used",
			slog.String("token_id", token.ID.String()),
			slog.String("error", err.Error()))
	} else {
		token.LastUsedAt = &now
	}

	return token, nil
}

// Revoke marks the token permanently invalid. Revoking an already revoked
// token succeeds without changing the original revocation instant.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	token, err := t.tokenRepo.Get(ctx, tokenID)
	if err != nil {
		return err
	}

	if token.Revoked() {
		return nil
	}

	return t.tokenRepo.Revoke(ctx, tokenID, time.Now().UTC())
}

// Refresh validates the presented secret, revokes its token, and issues a
// replacement for the same client.
//
// Revocation and generation are separate writes. If generation fails after
// revocation succeeded, the old token stays revoked: the caller retries with
// a fresh generate instead of keeping a credential that was meant to rotate.
func (t *tokenUseCase) Refresh(
	ctx context.Context,
	plainToken string,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	token, err := t.Validate(ctx, plainToken)
	if err != nil {
		return nil, err
	}

	if err := t.tokenRepo.Revoke(ctx, token.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return t.Generate(ctx, token.ClientID, ttl)
}

// CleanupExpired deletes tokens that expired more than the given number of
// days ago. With dryRun it reports the count without deleting.
func (t *tokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must not be negative")
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	return t.tokenRepo.DeleteExpired(ctx, before, dryRun)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	cfg *config.Config,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	tokenService webhookService.TokenService,
	logger *slog.Logger,
) TokenUseCase {
	return &tokenUseCase{
		config:       cfg,
		clientRepo:   clientRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}
