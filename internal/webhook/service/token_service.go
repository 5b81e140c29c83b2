package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	apperrors "github.com/allisson/hookguard/internal/errors"
)

// tokenService implements TokenService using SHA3-512 for token hashing.
//
// The salt is process-wide configuration rather than per-token: the digest
// must be deterministic so validation can look tokens up by hash, and the
// 256-bit random secret already carries enough entropy to defeat guessing.
type tokenService struct {
	salt string
}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The token is base64 URL-encoded for easy transmission and storage.
// Returns the plain token and its salted SHA3-512 hash.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	// Encode to base64 URL-safe string for text representation
	plainToken = base64.URLEncoding.EncodeToString(randomBytes)

	// Hash the token for storage
	tokenHash = t.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain text token concatenated with the process-wide salt
// using SHA3-512. Returns the digest as a hexadecimal string.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha3.Sum512([]byte(plainToken + t.salt))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a new TokenService using SHA3-512 with the given
// process-wide salt.
func NewTokenService(salt string) TokenService {
	return &tokenService{salt: salt}
}
