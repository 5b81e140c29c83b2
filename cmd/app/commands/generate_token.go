package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunGenerateToken issues a new webhook token for a client.
// The plain secret is printed exactly once; only its salted digest is stored.
// A zero expiration falls back to the configured default lifetime.
//
// Requirements: Database must be migrated and the client must exist.
func RunGenerateToken(
	ctx context.Context,
	tokenUseCase webhookUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientIDStr string,
	expiresInSeconds int64,
	format string,
) error {
	logger.Info("generating webhook token", slog.String("client_id", clientIDStr))

	// Parse client ID
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	if expiresInSeconds < 0 {
		return fmt.Errorf("expiration must not be negative, got: %d", expiresInSeconds)
	}

	ttl := time.Duration(expiresInSeconds) * time.Second

	output, err := tokenUseCase.Generate(ctx, clientID, ttl)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputGenerateTokenJSON(writer, output)
	} else {
		outputGenerateTokenText(writer, output)
	}

	logger.Info("token generated successfully",
		slog.String("token_id", output.Token.ID.String()),
		slog.String("client_id", clientID.String()),
		slog.Time("expires_at", output.Token.ExpiresAt),
	)

	return nil
}

// outputGenerateTokenText outputs the result in human-readable text format.
func outputGenerateTokenText(writer io.Writer, output *webhookDomain.GenerateTokenOutput) {
	_, _ = fmt.Fprintln(writer, "\nToken generated successfully!")
	_, _ = fmt.Fprintf(writer, "Token ID: %s\n", output.Token.ID.String())
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.Token.ClientID.String())
	_, _ = fmt.Fprintf(writer, "Token: %s\n", output.PlainToken)
	_, _ = fmt.Fprintf(writer, "Expires At: %s\n", output.Token.ExpiresAt.Format(time.RFC3339))
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
}

// outputGenerateTokenJSON outputs the result in JSON format for machine consumption.
func outputGenerateTokenJSON(writer io.Writer, output *webhookDomain.GenerateTokenOutput) {
	result := map[string]interface{}{
		"token_id":   output.Token.ID.String(),
		"client_id":  output.Token.ClientID.String(),
		"token":      output.PlainToken,
		"expires_at": output.Token.ExpiresAt.Format(time.RFC3339),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
