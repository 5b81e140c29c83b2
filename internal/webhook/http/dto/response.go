// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// GenerateTokenResponse contains the result of generating a webhook token.
// SECURITY: The token is only returned once and must be saved securely.
type GenerateTokenResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapGenerateTokenToResponse converts a token generation output to an API response.
func MapGenerateTokenToResponse(output *webhookDomain.GenerateTokenOutput) GenerateTokenResponse {
	return GenerateTokenResponse{
		ID:        output.Token.ID.String(),
		ClientID:  output.Token.ClientID.String(),
		Token:     output.PlainToken,
		ExpiresAt: output.Token.ExpiresAt,
	}
}

// ClientResponse represents a webhook client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapClientToResponse converts a domain client to an API response.
func MapClientToResponse(client *webhookDomain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		IsActive:  client.IsActive,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// WebhookAcceptedResponse is returned to an authenticated webhook delivery.
type WebhookAcceptedResponse struct {
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}
