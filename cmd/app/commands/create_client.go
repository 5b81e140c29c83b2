package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunCreateClient registers a new webhook client.
// Outputs the client ID in either text or JSON format; tokens are issued
// separately with the generate-token command.
//
// Requirements: Database must be migrated and accessible.
func RunCreateClient(
	ctx context.Context,
	clientUseCase webhookUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	isActive bool,
	format string,
) error {
	logger.Info("creating new client", slog.String("name", name))

	input := &webhookDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
	}

	client, err := clientUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateClientJSON(writer, client)
	} else {
		outputCreateClientText(writer, client)
	}

	logger.Info("client created successfully",
		slog.String("client_id", client.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// outputCreateClientText outputs the result in human-readable text format.
func outputCreateClientText(writer io.Writer, client *webhookDomain.Client) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", client.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", client.Name)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", client.IsActive)
	_, _ = fmt.Fprintln(writer, "\nIssue a webhook token with: app generate-token --client-id", client.ID.String())
}

// outputCreateClientJSON outputs the result in JSON format for machine consumption.
func outputCreateClientJSON(writer io.Writer, client *webhookDomain.Client) {
	result := map[string]interface{}{
		"client_id": client.ID.String(),
		"name":      client.Name,
		"is_active": client.IsActive,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
