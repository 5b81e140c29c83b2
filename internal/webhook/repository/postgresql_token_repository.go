package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/database"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create inserts a new Token into the PostgreSQL database.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *webhookDomain.Token) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.ClientID,
		token.TokenHash,
		token.ExpiresAt,
		token.RevokedAt,
		token.LastUsedAt,
		token.CreatedAt,
	)
	if err != nil {
		return storageError(err, "failed to create token")
	}
	return nil
}

// Get retrieves a Token by ID. Returns ErrTokenNotFound if the token doesn't exist.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*webhookDomain.Token, error) {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at
			  FROM tokens WHERE id = $1`

	return p.scanToken(querier.QueryRowContext(ctx, query, tokenID))
}

// GetByTokenHash retrieves a Token by its salted digest, the lookup used on
// every validation. Returns ErrTokenNotFound if no token matches.
func (p *PostgreSQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*webhookDomain.Token, error) {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at
			  FROM tokens WHERE token_hash = $1`

	return p.scanToken(querier.QueryRowContext(ctx, query, tokenHash))
}

// Revoke sets the revocation instant on a token. The single UPDATE keeps the
// transition atomic at record granularity; concurrent validations observe
// either the pre- or post-revoke row, never a partial one.
func (p *PostgreSQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET revoked_at = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, revokedAt, tokenID)
	if err != nil {
		return storageError(err, "failed to revoke token")
	}
	return nil
}

// UpdateLastUsed overwrites the last-used instant. Races between concurrent
// validations are last-writer-wins; the field is a freshness hint, not a
// security property.
func (p *PostgreSQLTokenRepository) UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET last_used_at = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, usedAt, tokenID)
	if err != nil {
		return storageError(err, "failed to update token last used")
	}
	return nil
}

// DeleteExpired removes tokens whose expiration passed before the given
// instant. With dryRun it only counts the matching rows.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM tokens WHERE expires_at < $1`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, storageError(err, "failed to count expired tokens")
		}
		return count, nil
	}

	query := `DELETE FROM tokens WHERE expires_at < $1`
	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, storageError(err, "failed to delete expired tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, storageError(err, "failed to read affected rows")
	}
	return count, nil
}

// scanToken scans a single token row, mapping sql.ErrNoRows to ErrTokenNotFound.
func (p *PostgreSQLTokenRepository) scanToken(row *sql.Row) (*webhookDomain.Token, error) {
	var token webhookDomain.Token

	err := row.Scan(
		&token.ID,
		&token.ClientID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.LastUsedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhookDomain.ErrTokenNotFound
		}
		return nil, storageError(err, "failed to get token")
	}

	return &token, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository.
func NewPostgreSQLTokenRepository(db *sql.DB, queryTimeout time.Duration) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db, queryTimeout: queryTimeout}
}
