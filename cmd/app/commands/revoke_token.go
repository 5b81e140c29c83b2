package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunRevokeToken permanently invalidates a webhook token.
// Revoking an already revoked token succeeds without change.
//
// Requirements: Database must be migrated and the token must exist.
func RunRevokeToken(
	ctx context.Context,
	tokenUseCase webhookUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tokenIDStr string,
	format string,
) error {
	logger.Info("revoking webhook token", slog.String("token_id", tokenIDStr))

	// Parse token ID
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return fmt.Errorf("invalid token ID format: %w", err)
	}

	if err := tokenUseCase.Revoke(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputRevokeTokenJSON(writer, tokenID)
	} else {
		_, _ = fmt.Fprintf(writer, "Token %s revoked\n", tokenID.String())
	}

	logger.Info("token revoked successfully", slog.String("token_id", tokenID.String()))

	return nil
}

// outputRevokeTokenJSON outputs the result in JSON format for machine consumption.
func outputRevokeTokenJSON(writer io.Writer, tokenID uuid.UUID) {
	result := map[string]interface{}{
		"token_id": tokenID.String(),
		"revoked":  true,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
