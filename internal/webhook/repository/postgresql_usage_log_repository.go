package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/hookguard/internal/database"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// PostgreSQLUsageLogRepository implements append-only UsageLog persistence
// for PostgreSQL.
type PostgreSQLUsageLogRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create appends a usage log entry. Entries are never updated or deleted by
// the request path.
func (p *PostgreSQLUsageLogRepository) Create(ctx context.Context, usageLog *webhookDomain.UsageLog) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO usage_logs (id, token_id, ip_address, endpoint_path, success, error_detail, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		usageLog.ID,
		usageLog.TokenID,
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
// With dryRun it only counts the matching rows. Housekeeping only; the
// request path never deletes.
func (p *PostgreSQLUsageLogRepository) DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM usage_logs WHERE created_at < $1`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, storageError(err, "failed to count usage logs")
		}
		return count, nil
	}

	query := `DELETE FROM usage_logs WHERE created_at < $1`
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

// NewPostgreSQLUsageLogRepository creates a new PostgreSQL UsageLog repository.
func NewPostgreSQLUsageLogRepository(db *sql.DB, queryTimeout time.Duration) *PostgreSQLUsageLogRepository {
	return &PostgreSQLUsageLogRepository{db: db, queryTimeout: queryTimeout}
}
