package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/hookguard/internal/errors"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

const tokenColumnList = "id, client_id, token_hash, expires_at, revoked_at, last_used_at, created_at"

func tokenRows(token *webhookDomain.Token) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "client_id", "token_hash", "expires_at", "revoked_at", "last_used_at", "created_at"}).
		AddRow(token.ID, token.ClientID, token.TokenHash, token.ExpiresAt, token.RevokedAt, token.LastUsedAt, token.CreatedAt)
}

func newTestToken() *webhookDomain.Token {
	now := time.Now().UTC()
	return &webhookDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  uuid.Must(uuid.NewV7()),
		TokenHash: "test-token-hash",
		ExpiresAt: now.Add(30 * 24 * time.Hour),
		CreatedAt: now,
	}
}

func TestPostgreSQLTokenRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db, time.Second)
	token := newTestToken()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tokens`)).
		WithArgs(token.ID, token.ClientID, token.TokenHash, token.ExpiresAt, token.RevokedAt, token.LastUsedAt, token.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTokenRepository_Create_StorageUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db, time.Second)
	token := newTestToken()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tokens`)).
		WillReturnError(errors.New("connection refused"))

	err = repo.Create(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTokenRepository_GetByTokenHash(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db, time.Second)
		token := newTestToken()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + tokenColumnList)).
			WithArgs(token.TokenHash).
			WillReturnRows(tokenRows(token))

		got, err := repo.GetByTokenHash(context.Background(), token.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, token.ID, got.ID)
		assert.Equal(t, token.ClientID, got.ClientID)
		assert.Equal(t, token.TokenHash, got.TokenHash)
		assert.Nil(t, got.RevokedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db, time.Second)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + tokenColumnList)).
			WithArgs("unknown-hash").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByTokenHash(context.Background(), "unknown-hash")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, webhookDomain.ErrTokenNotFound)
		assert.NotErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StorageFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db, time.Second)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + tokenColumnList)).
			WithArgs("any-hash").
			WillReturnError(errors.New("driver: bad connection"))

		got, err := repo.GetByTokenHash(context.Background(), "any-hash")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLTokenRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db, time.Second)
	token := newTestToken()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + tokenColumnList)).
		WithArgs(token.ID).
		WillReturnRows(tokenRows(token))

	got, err := repo.Get(context.Background(), token.ID)
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTokenRepository_Revoke(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db, time.Second)
	tokenID := uuid.Must(uuid.NewV7())
	revokedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tokens SET revoked_at = $1 WHERE id = $2`)).
		WithArgs(revokedAt, tokenID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Revoke(context.Background(), tokenID, revokedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTokenRepository_UpdateLastUsed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db, time.Second)
	tokenID := uuid.Must(uuid.NewV7())
	usedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tokens SET last_used_at = $1 WHERE id = $2`)).
		WithArgs(usedAt, tokenID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateLastUsed(context.Background(), tokenID, usedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTokenRepository_DeleteExpired(t *testing.T) {
	t.Run("DryRunOnlyCounts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db, time.Second)
		before := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tokens WHERE expires_at < $1`)).
			WithArgs(before).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.DeleteExpired(context.Background(), before, true)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeletesAndReportsCount", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db, time.Second)
		before := time.Now().UTC()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tokens WHERE expires_at < $1`)).
			WithArgs(before).
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := repo.DeleteExpired(context.Background(), before, false)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
