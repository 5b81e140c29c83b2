package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/hookguard/internal/errors"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// usageLogUseCase implements UsageLogUseCase for recording webhook usage.
type usageLogUseCase struct {
	usageLogRepo UsageLogRepository
}

// Record appends a usage log entry for an authenticated webhook request.
func (u *usageLogUseCase) Record(
	ctx context.Context,
	tokenID uuid.UUID,
	ipAddress, endpointPath string,
	success bool,
	errorDetail *string,
) error {
	usageLog := &webhookDomain.UsageLog{
		ID:           uuid.Must(uuid.NewV7()),
		TokenID:      tokenID,
		IPAddress:    ipAddress,
		EndpointPath: endpointPath,
		Success:      success,
		ErrorDetail:  errorDetail,
		CreatedAt:    time.Now().UTC(),
	}

	return u.usageLogRepo.Create(ctx, usageLog)
}

// CleanupOlderThan deletes entries older than the given number of days.
// With dryRun it reports the count without deleting.
func (u *usageLogUseCase) CleanupOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must not be negative")
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	return u.usageLogRepo.DeleteOlderThan(ctx, before, dryRun)
}

// NewUsageLogUseCase creates a new UsageLogUseCase with the provided dependencies.
func NewUsageLogUseCase(usageLogRepo UsageLogRepository) UsageLogUseCase {
	return &usageLogUseCase{usageLogRepo: usageLogRepo}
}
