package domain

import (
	"github.com/allisson/hookguard/internal/errors"
)

// Webhook token security errors.
var (
	// ErrClientNotFound indicates a client with the specified ID was not found.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrClientInactive indicates the client exists but has been deactivated.
	ErrClientInactive = errors.Wrap(errors.ErrForbidden, "client is not active")

	// ErrTokenNotFound indicates a token with the specified ID was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidToken is the uniform negative outcome of token validation.
	// It deliberately does not distinguish unknown, expired, revoked, or
	// inactive-client tokens, to prevent probing for token state.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired webhook token")
)
