// Package service provides technical services for webhook token security:
// secret generation, salted one-way hashing, and per-token rate limiting.
package service

import "github.com/google/uuid"

// TokenService defines operations for webhook token generation and hashing.
// Implementations must use a cryptographically secure random source and a
// deterministic digest (the digest is the storage lookup key).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure 256-bit random
	// secret. Returns both the plain text secret (shown to the caller exactly
	// once) and the salted digest to be stored in its place.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken computes the salted digest of a plain text secret.
	// Deterministic for equal inputs so validation can look up by hash.
	HashToken(plainToken string) string
}

// AdminKeyService defines operations for hashing and verifying the
// administrative API key that protects token lifecycle endpoints.
type AdminKeyService interface {
	// HashKey hashes a plain text admin key with Argon2id for storage in
	// configuration.
	HashKey(plainKey string) (string, error)

	// VerifyKey performs a constant-time comparison between a plain key and
	// its stored hash.
	VerifyKey(plainKey string, hashedKey string) bool
}

// RateLimiter bounds request volume per token identity.
type RateLimiter interface {
	// Allow checks the current window for the token and increments its
	// counter if capacity remains. Returns false without incrementing once
	// the window is full.
	Allow(tokenID uuid.UUID) bool
}
