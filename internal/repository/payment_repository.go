package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopstack/auth-platform/internal/domain"
)

// PaymentRepository records payment intents for dashboard aggregation and
// webhook status updates.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	UpdateStatusByIntentID(ctx context.Context, intentID string, status domain.PaymentStatus) error
	Count(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (intent_id, user_id, amount, currency, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		payment.IntentID,
		payment.UserID,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	const query = `
        SELECT id, intent_id, user_id, amount, currency, status, created_at
        FROM payments WHERE intent_id=$1`

	var payment domain.Payment
	if err := r.db.QueryRow(ctx, query, intentID).Scan(
		&payment.ID,
		&payment.IntentID,
		&payment.UserID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatusByIntentID(ctx context.Context, intentID string, status domain.PaymentStatus) error {
	const query = `UPDATE payments SET status=$1 WHERE intent_id=$2`

	cmd, err := r.db.Exec(ctx, query, status, intentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM payments`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
