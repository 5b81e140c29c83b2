package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

func TestRunRevokeToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		tokenID := uuid.Must(uuid.NewV7())

		mockUseCase := &mockTokenUseCase{}
		mockUseCase.On("Revoke", ctx, tokenID).Return(nil)

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, &out, tokenID.String(), "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "revoked")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		tokenID := uuid.Must(uuid.NewV7())

		mockUseCase := &mockTokenUseCase{}
		mockUseCase.On("Revoke", ctx, tokenID).Return(nil)

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, &out, tokenID.String(), "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"revoked": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-id", func(t *testing.T) {
		mockUseCase := &mockTokenUseCase{}

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, &out, "not-a-uuid", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid token ID format")
		mockUseCase.AssertNotCalled(t, "Revoke")
	})

	t.Run("not-found", func(t *testing.T) {
		tokenID := uuid.Must(uuid.NewV7())

		mockUseCase := &mockTokenUseCase{}
		mockUseCase.On("Revoke", ctx, tokenID).Return(webhookDomain.ErrTokenNotFound)

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, &out, tokenID.String(), "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to revoke token")
	})
}
