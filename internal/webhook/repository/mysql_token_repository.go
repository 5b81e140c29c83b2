package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hookguard/internal/database"
	apperrors "github.com/allisson/hookguard/internal/errors"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create inserts a new Token into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *webhookDomain.Token) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	clientID, err := token.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO tokens (id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		clientID,
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
func (m *MySQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*webhookDomain.Token, error) {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `SELECT id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at
			  FROM tokens WHERE id = ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, id))
}

// GetByTokenHash retrieves a Token by its salted digest, the lookup used on
// every validation. Returns ErrTokenNotFound if no token matches.
func (m *MySQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*webhookDomain.Token, error) {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at
			  FROM tokens WHERE token_hash = ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, tokenHash))
}

// Revoke sets the revocation instant on a token. The single UPDATE keeps the
// transition atomic at record granularity.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `UPDATE tokens SET revoked_at = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, revokedAt, id)
	if err != nil {
		return storageError(err, "failed to revoke token")
	}
	return nil
}

// UpdateLastUsed overwrites the last-used instant. Last-writer-wins under
// concurrent validations.
func (m *MySQLTokenRepository) UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `UPDATE tokens SET last_used_at = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, usedAt, id)
	if err != nil {
		return storageError(err, "failed to update token last used")
	}
	return nil
}

// DeleteExpired removes tokens whose expiration passed before the given
// instant. With dryRun it only counts the matching rows.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM tokens WHERE expires_at < ?`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, storageError(err, "failed to count expired tokens")
		}
		return count, nil
	}

	query := `DELETE FROM tokens WHERE expires_at < ?`
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

// scanToken scans a single token row, decoding BINARY(16) UUID columns and
// mapping sql.ErrNoRows to ErrTokenNotFound.
func (m *MySQLTokenRepository) scanToken(row *sql.Row) (*webhookDomain.Token, error) {
	var token webhookDomain.Token
	var idBytes []byte
	var clientIDBytes []byte

	err := row.Scan(
		&idBytes,
		&clientIDBytes,
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

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}

	if err := token.ClientID.UnmarshalBinary(clientIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &token, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB, queryTimeout time.Duration) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db, queryTimeout: queryTimeout}
}
