package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/hookguard/internal/errors"
)

// adminKeyService implements AdminKeyService using Argon2id hashing.
type adminKeyService struct {
	hasher *pwdhash.PasswordHasher
}

// HashKey hashes a plain text admin key using Argon2id.
func (a *adminKeyService) HashKey(plainKey string) (string, error) {
	hashedKey, err := a.hasher.Hash([]byte(plainKey))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash admin key")
	}
	return hashedKey, nil
}

// VerifyKey performs a constant-time comparison between a plain key and its hash.
func (a *adminKeyService) VerifyKey(plainKey string, hashedKey string) bool {
	ok, err := a.hasher.Verify([]byte(plainKey), hashedKey)
	if err != nil {
		return false
	}
	return ok
}

// NewAdminKeyService creates a new AdminKeyService using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewAdminKeyService() AdminKeyService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &adminKeyService{
		hasher: hasher,
	}
}
