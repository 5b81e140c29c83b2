// Package http provides the HTTP gate for webhook endpoints: token
// extraction, validation, per-token rate limiting, and usage logging.
package http

import (
	"context"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// tokenKey is a context key type for storing authenticated webhook tokens.
type tokenKey struct{}

// WithToken stores an authenticated webhook token in the context.
// Called by the authentication middleware after successful validation.
func WithToken(ctx context.Context, token *webhookDomain.Token) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken retrieves an authenticated webhook token from the context.
// Returns (token, true) if a token is present, or (nil, false) if not set.
func GetToken(ctx context.Context) (*webhookDomain.Token, bool) {
	token, ok := ctx.Value(tokenKey{}).(*webhookDomain.Token)
	return token, ok
}
