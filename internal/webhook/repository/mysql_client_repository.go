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

// MySQLClientRepository implements Client persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create inserts a new Client into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLClientRepository) Create(ctx context.Context, client *webhookDomain.Client) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO clients (id, name, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.Name,
		client.IsActive,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return storageError(err, "failed to create client")
	}
	return nil
}

// Update modifies an existing Client in the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLClientRepository) Update(ctx context.Context, client *webhookDomain.Client) error {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `UPDATE clients
			  SET name = ?,
				  is_active = ?,
				  updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		client.Name,
		client.IsActive,
		client.UpdatedAt,
		id,
	)
	if err != nil {
		return storageError(err, "failed to update client")
	}
	return nil
}

// Get retrieves a Client by ID using BINARY(16) for UUIDs. Returns
// ErrClientNotFound if the client doesn't exist.
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error) {
	ctx, cancel := queryContext(ctx, m.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT id, name, is_active, created_at, updated_at
			  FROM clients WHERE id = ?`

	var client webhookDomain.Client
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&client.Name,
		&client.IsActive,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhookDomain.ErrClientNotFound
		}
		return nil, storageError(err, "failed to get client")
	}

	if err := client.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &client, nil
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB, queryTimeout time.Duration) *MySQLClientRepository {
	return &MySQLClientRepository{db: db, queryTimeout: queryTimeout}
}
