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

// PostgreSQLClientRepository implements Client persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLClientRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Create inserts a new Client into the PostgreSQL database.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *webhookDomain.Client) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, name, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
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

// Update modifies an existing Client in the PostgreSQL database.
func (p *PostgreSQLClientRepository) Update(ctx context.Context, client *webhookDomain.Client) error {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients
			  SET name = $1,
				  is_active = $2,
				  updated_at = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.Name,
		client.IsActive,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return storageError(err, "failed to update client")
	}
	return nil
}

// Get retrieves a Client by ID. Returns ErrClientNotFound if the client
// doesn't exist.
func (p *PostgreSQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error) {
	ctx, cancel := queryContext(ctx, p.queryTimeout)
	defer cancel()

	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, is_active, created_at, updated_at
			  FROM clients WHERE id = $1`

	var client webhookDomain.Client

	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
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

	return &client, nil
}

// NewPostgreSQLClientRepository creates a new PostgreSQL Client repository.
func NewPostgreSQLClientRepository(db *sql.DB, queryTimeout time.Duration) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db, queryTimeout: queryTimeout}
}
