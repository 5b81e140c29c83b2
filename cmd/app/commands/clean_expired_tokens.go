package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunCleanExpiredTokens deletes tokens that expired more than the specified
// number of days ago. Supports dry-run mode to preview the deletion count and
// both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase webhookUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := tokenUseCase.CleanupExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanupJSON(writer, count, days, dryRun)
	} else {
		outputCleanupText(writer, "expired token(s)", count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanupText outputs the result in human-readable text format.
func outputCleanupText(writer io.Writer, subject string, count int64, days int, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d %s older than %d day(s)\n", count, subject, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d %s older than %d day(s)\n", count, subject, days)
	}
}

// outputCleanupJSON outputs the result in JSON format for machine consumption.
func outputCleanupJSON(writer io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
