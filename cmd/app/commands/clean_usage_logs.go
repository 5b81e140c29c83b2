package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	webhookUseCase "github.com/allisson/hookguard/internal/webhook/usecase"
)

// RunCleanUsageLogs deletes usage log entries older than the specified number
// of days. Supports dry-run mode to preview the deletion count and both
// text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanUsageLogs(
	ctx context.Context,
	usageLogUseCase webhookUseCase.UsageLogUseCase,
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

	logger.Info("cleaning usage logs",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := usageLogUseCase.CleanupOlderThan(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup usage logs: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanupJSON(writer, count, days, dryRun)
	} else {
		outputCleanupText(writer, "usage log(s)", count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}
