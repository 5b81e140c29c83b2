// Package repository implements persistence for clients, webhook tokens, and
// usage logs on PostgreSQL and MySQL.
//
// Every operation carries a bounded timeout from configuration. Storage
// failures and timeouts surface as ErrUnavailable so callers can distinguish
// a broken store from an invalid credential.
package repository

import (
	"context"
	"time"

	apperrors "github.com/allisson/hookguard/internal/errors"
)

// queryContext bounds a repository call with the configured timeout.
func queryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// storageError wraps a driver error as ErrUnavailable with context.
// The original driver error is kept in the message for logging; the error
// chain carries only the domain kind.
func storageError(err error, message string) error {
	return apperrors.Wrap(apperrors.Wrap(apperrors.ErrUnavailable, err.Error()), message)
}
