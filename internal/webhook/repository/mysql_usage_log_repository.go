package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/hookguard/internal/database"
	apperrors "github.com/allisson/hookguard/internal/errors"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// MySQLUsageLogRepository implements append-only UsageLog persistence for
// MySQL. Uses BINARY(16) for UUID storage.
type MySQLUsageLogRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create appends a usage log entry.
func (m *MySQLUsageLogRepository) Create(ctx context.Context, usageLog *webhookDomain.UsageLog) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := usageLog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal usage log id")
	}

	tokenID, err := usageLog.TokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `INSERT INTO usage_logs (id, token_id, ip_address, endpoint_path, success, error_detail, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		tokenID,
		usageLog.IPAddress,
		usageLog.EndpointPath,
		usageLog.Success,
		usageLog.ErrorDetail,
		usageLog.CreatedAt,
	)
	if err != nil {
		return storageError(err, "failed to create usage log")
	}
	return nil
}

// DeleteOlderThan removes usage log entries created before the given instant.
// With dryRun it only counts the matching rows.
func (m *MySQLUsageLogRepository) DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM usage_logs WHERE created_at < ?`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, storageError(err, "failed to count usage logs")
		}
		return count, nil
	}

	query := `DELETE FROM usage_logs WHERE created_at < ?`
	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, storageError(err, "failed to delete usage logs")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, storageError(err, "failed to read affected rows")
	}
	return count, nil
}

// NewMySQLUsageLogRepository creates a new MySQL UsageLog repository.
func NewMySQLUsageLogRepository(db *sql.DB, queryTimeout time.Duration) *MySQLUsageLogRepository {
	return &MySQLUsageLogRepository{db: db, queryTimeout: queryTimeout}
}
