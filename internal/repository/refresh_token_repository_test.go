package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/auth-platform/internal/domain"
)

func setupRefreshRepo(t *testing.T) (RefreshTokenRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewRefreshTokenRepository(mock), mock
}

func TestRefreshTokenRepository_Create_Success(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	expiry := time.Now().Add(7 * 24 * time.Hour)
	mock.ExpectQuery("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "token-value", expiry).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(10), time.Now()))

	token := &domain.RefreshToken{UserID: 1, Token: "token-value", ExpiryDate: expiry}
	err := repo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(10), token.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken_Success(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	expiry := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	created := expiry.Add(-7 * 24 * time.Hour)
	mock.ExpectQuery("FROM refresh_tokens WHERE token").
		WithArgs("token-value").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "token", "expiry_date", "created_at"}).
			AddRow(int64(10), int64(1), "token-value", expiry, created))

	token, err := repo.GetByToken(context.Background(), "token-value")
	require.NoError(t, err)
	assert.Equal(t, int64(1), token.UserID)
	assert.Equal(t, expiry, token.ExpiryDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken_NotFound(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectQuery("FROM refresh_tokens WHERE token").
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Revoke_Success(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE token").
		WithArgs("token-value").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Revoke(context.Background(), "token-value"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Revoke_AlreadyGone(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE token").
		WithArgs("token-value").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Revoke(context.Background(), "token-value")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Rotate_Success(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	expiry := time.Now().Add(7 * 24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE token").
		WithArgs("old-token").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "new-token", expiry).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(11), time.Now()))
	mock.ExpectCommit()

	next := &domain.RefreshToken{UserID: 1, Token: "new-token", ExpiryDate: expiry}
	err := repo.Rotate(context.Background(), "old-token", next)
	require.NoError(t, err)
	assert.Equal(t, int64(11), next.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Rotate_OldTokenAlreadyConsumed(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE token").
		WithArgs("old-token").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	next := &domain.RefreshToken{UserID: 1, Token: "new-token", ExpiryDate: time.Now()}
	err := repo.Rotate(context.Background(), "old-token", next)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Rotate_InsertFailureRollsBack(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	expiry := time.Now().Add(7 * 24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE token").
		WithArgs("old-token").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "new-token", expiry).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	next := &domain.RefreshToken{UserID: 1, Token: "new-token", ExpiryDate: expiry}
	err := repo.Rotate(context.Background(), "old-token", next)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE expiry_date").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_RevokeAllForUser(t *testing.T) {
	repo, mock := setupRefreshRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	assert.NoError(t, repo.RevokeAllForUser(context.Background(), int64(1)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
