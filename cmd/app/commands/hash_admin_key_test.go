package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunHashAdminKey(t *testing.T) {
	logger := slog.Default()

	t.Run("key-from-flag", func(t *testing.T) {
		mockService := &mockAdminKeyService{}
		mockService.On("HashKey", "admin-key").Return("$argon2id$hash", nil)

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader(""), Writer: &out}

		err := RunHashAdminKey(mockService, logger, io, "admin-key")

		require.NoError(t, err)
		require.Contains(t, out.String(), "ADMIN_API_KEY_HASH=$argon2id$hash")
		mockService.AssertExpectations(t)
	})

	t.Run("interactive-prompt", func(t *testing.T) {
		mockService := &mockAdminKeyService{}
		mockService.On("HashKey", "prompted-key").Return("$argon2id$other", nil)

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader("prompted-key\n"), Writer: &out}

		err := RunHashAdminKey(mockService, logger, io, "")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Enter admin API key:")
		require.Contains(t, out.String(), "ADMIN_API_KEY_HASH=$argon2id$other")
		mockService.AssertExpectations(t)
	})

	t.Run("empty-key", func(t *testing.T) {
		mockService := &mockAdminKeyService{}

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader("\n"), Writer: &out}

		err := RunHashAdminKey(mockService, logger, io, "")

		require.Error(t, err)
		require.Contains(t, err.Error(), "admin key cannot be empty")
		mockService.AssertNotCalled(t, "HashKey")
	})

	t.Run("hash-error", func(t *testing.T) {
		mockService := &mockAdminKeyService{}
		mockService.On("HashKey", "admin-key").Return("", context.DeadlineExceeded)

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader(""), Writer: &out}

		err := RunHashAdminKey(mockService, logger, io, "admin-key")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to hash admin key")
	})
}
