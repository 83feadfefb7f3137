package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopstack/auth-platform/internal/domain"
)

// RefreshTokenRepository manages persisted refresh tokens so they can be
// revoked and rotated independently of their cryptographic validity.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// Revoke deletes the row for the given token value. Returns pgx.ErrNoRows
	// when no such token is stored.
	Revoke(ctx context.Context, token string) error
	// Rotate atomically invalidates the old token and persists its
	// replacement inside one transaction, so two concurrent refresh calls
	// cannot both succeed off the same stale token.
	Rotate(ctx context.Context, oldToken string, next *domain.RefreshToken) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type refreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository returns a Postgres-backed implementation.
func NewRefreshTokenRepository(db DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (user_id, token, expiry_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		token.UserID,
		token.Token,
		token.ExpiryDate,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *refreshTokenRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.RefreshToken, error) {
	const query = `
        SELECT id, user_id, token, expiry_date, created_at
        FROM refresh_tokens WHERE token=$1`

	var token domain.RefreshToken
	if err := r.db.QueryRow(ctx, query, tokenStr).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiryDate,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenStr string) error {
	const query = `DELETE FROM refresh_tokens WHERE token=$1`

	cmd, err := r.db.Exec(ctx, query, tokenStr)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *refreshTokenRepository) Rotate(ctx context.Context, oldToken string, next *domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE token=$1`, oldToken)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := tx.QueryRow(ctx, `
        INSERT INTO refresh_tokens (user_id, token, expiry_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`,
		next.UserID,
		next.Token,
		next.ExpiryDate,
	).Scan(&next.ID, &next.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id=$1`

	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM refresh_tokens WHERE expiry_date < NOW()`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
