// Package domain defines the webhook token security domain models.
//
// Clients own webhook tokens; tokens are bearer credentials stored only as
// salted one-way digests; usage logs form an append-only audit trail of
// authenticated webhook deliveries.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a registered webhook caller that can own tokens.
// A deactivated client can still own tokens, but none of them validate.
type Client struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	Name      string    // Human-readable client name
	IsActive  bool      // Whether tokens owned by the client can validate
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateClientInput contains the parameters for registering a new client.
type CreateClientInput struct {
	Name     string // Human-readable name for identifying the client
	IsActive bool   // Whether the client's tokens can validate immediately
}

// UpdateClientInput contains the mutable fields for updating an existing client.
// The client ID cannot be modified through updates.
type UpdateClientInput struct {
	Name     string // Updated human-readable name
	IsActive bool   // Updated active status (false invalidates all the client's tokens)
}
