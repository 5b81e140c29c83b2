package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunUpdateClient updates an existing webhook client's configuration.
// Only Name and IsActive can be updated. The client ID remains unchanged.
//
// Requirements: Database must be migrated and the client must exist.
func RunUpdateClient(
	ctx context.Context,
	clientUseCase webhookUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientIDStr string,
	name string,
	isActive bool,
	format string,
) error {
	logger.Info("updating client", slog.String("client_id", clientIDStr))

	// Parse client ID
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	input := &webhookDomain.UpdateClientInput{
		Name:     name,
		IsActive: isActive,
	}

	if err := clientUseCase.Update(ctx, clientID, input); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUpdateJSON(writer, clientID, name, isActive)
	} else {
		outputUpdateText(writer, clientID, name, isActive)
	}

	logger.Info("client updated successfully",
		slog.String("client_id", clientID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// RunDeactivateClient soft deletes a webhook client by setting it inactive.
// Tokens of a deactivated client fail validation while their records remain.
func RunDeactivateClient(
	ctx context.Context,
	clientUseCase webhookUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientIDStr string,
) error {
	logger.Info("deactivating client", slog.String("client_id", clientIDStr))

	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	if err := clientUseCase.Deactivate(ctx, clientID); err != nil {
		return fmt.Errorf("failed to deactivate client: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Client %s deactivated\n", clientID.String())

	logger.Info("client deactivated successfully", slog.String("client_id", clientID.String()))

	return nil
}

// outputUpdateText outputs the result in human-readable text format.
func outputUpdateText(writer io.Writer, clientID uuid.UUID, name string, isActive bool) {
	_, _ = fmt.Fprintln(writer, "\nClient updated successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", clientID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", name)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", isActive)
}

// outputUpdateJSON outputs the result in JSON format for machine consumption.
func outputUpdateJSON(writer io.Writer, clientID uuid.UUID, name string, isActive bool) {
	result := map[string]interface{}{
		"client_id": clientID.String(),
		"name":      name,
		"is_active": isActive,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
