package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/auth-platform/internal/domain"
)

type fakePaymentRepo struct {
	mu       sync.Mutex
	byIntent map[string]*domain.Payment
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byIntent: make(map[string]*domain.Payment), nextID: 1}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = f.nextID
	f.nextID++
	copied := *payment
	f.byIntent[payment.IntentID] = &copied
	return nil
}

func (f *fakePaymentRepo) GetByIntentID(_ context.Context, intentID string) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.byIntent[intentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) UpdateStatusByIntentID(_ context.Context, intentID string, status domain.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.byIntent[intentID]
	if !ok {
		return pgx.ErrNoRows
	}
	payment.Status = status
	return nil
}

func (f *fakePaymentRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byIntent)), nil
}

func TestCreateIntent_Success(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewPaymentService(repo, nil, nil)

	payment, err := svc.CreateIntent(context.Background(), 1, 2500, "usd")
	require.NoError(t, err)
	assert.NotEmpty(t, payment.IntentID)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)

	stored, err := repo.GetByIntentID(context.Background(), payment.IntentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), stored.Amount)
}

func TestCreateIntent_Validation(t *testing.T) {
	svc := NewPaymentService(newFakePaymentRepo(), nil, nil)

	_, err := svc.CreateIntent(context.Background(), 1, 0, "usd")
	assert.Equal(t, "MISSING_AMOUNT", errCode(t, err))

	_, err = svc.CreateIntent(context.Background(), 1, -5, "usd")
	assert.Equal(t, "MISSING_AMOUNT", errCode(t, err))

	_, err = svc.CreateIntent(context.Background(), 1, 2500, "")
	assert.Equal(t, "MISSING_CURRENCY", errCode(t, err))
}

func TestApplyWebhook_UpdatesStatus(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewPaymentService(repo, nil, nil)

	payment, err := svc.CreateIntent(context.Background(), 1, 2500, "usd")
	require.NoError(t, err)

	require.NoError(t, svc.ApplyWebhook(context.Background(), payment.IntentID, domain.PaymentStatusSucceeded))

	stored, err := repo.GetByIntentID(context.Background(), payment.IntentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, stored.Status)
}

func TestApplyWebhook_UnknownIntentIsAcknowledged(t *testing.T) {
	svc := NewPaymentService(newFakePaymentRepo(), nil, nil)

	assert.NoError(t, svc.ApplyWebhook(context.Background(), "pi_unknown", domain.PaymentStatusFailed))
}
