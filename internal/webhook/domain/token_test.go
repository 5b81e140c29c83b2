package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/hookguard/internal/errors"
)

func TestToken_Revoked(t *testing.T) {
	now := time.Now().UTC()

	token := &Token{
		ID:        uuid.Must(uuid.NewV7()),
		ExpiresAt: now.Add(time.Hour),
	}
	assert.False(t, token.Revoked())

	token.RevokedAt = &now
	assert.True(t, token.Revoked())
}

func TestToken_Expired(t *testing.T) {
	now := time.Now().UTC()

	token := &Token{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, token.Expired(now))

	// The expiration instant itself is already expired.
	assert.True(t, token.Expired(token.ExpiresAt))
	assert.True(t, token.Expired(now.Add(2*time.Hour)))
}

func TestDomainErrorsMapToKinds(t *testing.T) {
	assert.True(t, apperrors.Is(ErrClientNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrTokenNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrClientInactive, apperrors.ErrForbidden))
	assert.True(t, apperrors.Is(ErrInvalidToken, apperrors.ErrUnauthorized))

	// Validation failures must never look like storage failures.
	assert.False(t, apperrors.Is(ErrInvalidToken, apperrors.ErrUnavailable))
}
