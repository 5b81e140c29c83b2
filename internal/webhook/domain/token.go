package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a single issued webhook credential. Only the salted digest of the
// secret is ever stored; the plaintext exists in memory during issuance and
// validation only.
type Token struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time // nil while the token is not revoked
	LastUsedAt *time.Time // updated best-effort on successful validation only
	CreatedAt  time.Time
}

// Revoked reports whether the token has been explicitly revoked.
// Revocation is the only persisted terminal state.
func (t *Token) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's expiration instant has passed at the
// given time. Expiry is time-triggered and never persisted as a transition.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// GenerateTokenOutput contains the result of issuing a webhook token.
// SECURITY: PlainToken is returned exactly once and is never persisted.
type GenerateTokenOutput struct {
	PlainToken string
	Token      *Token
}
