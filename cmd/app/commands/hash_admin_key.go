package commands

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	webhookService "github.com/allisson/hookguard/internal/webhook/service"
)

// RunHashAdminKey hashes an administrative API key with Argon2id for storage
// in configuration. Prompts for the key interactively when not provided via
// flag. The plain key is never logged.
func RunHashAdminKey(
	adminKeyService webhookService.AdminKeyService,
	logger *slog.Logger,
	io IOTuple,
	plainKey string,
) error {
	if plainKey == "" {
		// Interactive mode
		_, _ = fmt.Fprint(io.Writer, "Enter admin API key: ")

		reader := bufio.NewReader(io.Reader)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read admin key: %w", err)
		}
		plainKey = strings.TrimSpace(input)
	}

	if plainKey == "" {
		return fmt.Errorf("admin key cannot be empty")
	}

	hash, err := adminKeyService.HashKey(plainKey)
	if err != nil {
		return fmt.Errorf("failed to hash admin key: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, "\nAdmin key hashed successfully!")
	_, _ = fmt.Fprintf(io.Writer, "ADMIN_API_KEY_HASH=%s\n", hash)
	_, _ = fmt.Fprintln(io.Writer, "\nSet this environment variable to enable the admin endpoints.")

	logger.Info("admin key hash generated")

	return nil
}
