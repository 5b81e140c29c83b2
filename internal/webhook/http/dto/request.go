// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/hookguard/internal/validation"
)

// GenerateTokenRequest contains the parameters for generating a webhook token.
type GenerateTokenRequest struct {
	ClientID string `json:"client_id"`
	// ExpiresInSeconds overrides the configured default token lifetime.
	// Zero or absent keeps the default.
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
}

// Validate checks if the generate token request is valid.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.UUID,
		),
		validation.Field(&r.ExpiresInSeconds,
			validation.Min(0),
		),
	)
}

// RefreshTokenRequest contains the parameters for refreshing a webhook token.
// The token being refreshed arrives in the X-Webhook-Token header; the body
// only carries the optional lifetime override.
type RefreshTokenRequest struct {
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
}

// Validate checks if the refresh token request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ExpiresInSeconds,
			validation.Min(0),
		),
	)
}

// RevokeTokenRequest contains the parameters for revoking a webhook token.
type RevokeTokenRequest struct {
	TokenID string `json:"token_id"`
}

// Validate checks if the revoke token request is valid.
func (r *RevokeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TokenID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.UUID,
		),
	)
}

// CreateClientRequest contains the parameters for registering a webhook client.
type CreateClientRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Validate checks if the create client request is valid.
func (r *CreateClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// UpdateClientRequest contains the parameters for updating a webhook client.
type UpdateClientRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Validate checks if the update client request is valid.
func (r *UpdateClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
