package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// clientUseCase implements ClientUseCase for managing webhook clients.
type clientUseCase struct {
	clientRepo ClientRepository
}

// Create registers a new webhook client.
func (c *clientUseCase) Create(
	ctx context.Context,
	createClientInput *webhookDomain.CreateClientInput,
) (*webhookDomain.Client, error) {
	now := time.Now().UTC()
	client := &webhookDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      createClientInput.Name,
		IsActive:  createClientInput.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Update modifies an existing client's name and active status.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *webhookDomain.UpdateClientInput,
) error {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.Name = updateClientInput.Name
	client.IsActive = updateClientInput.IsActive
	client.UpdatedAt = time.Now().UTC()

	return c.clientRepo.Update(ctx, client)
}

// Get retrieves a client by ID.
// Returns ErrClientNotFound if the client doesn't exist.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

// Deactivate performs a soft delete by setting IsActive to false. Existing
// tokens stop validating immediately while their records remain for audit.
func (c *clientUseCase) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.IsActive = false
	client.UpdatedAt = time.Now().UTC()

	return c.clientRepo.Update(ctx, client)
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(clientRepo ClientRepository) ClientUseCase {
	return &clientUseCase{clientRepo: clientRepo}
}
