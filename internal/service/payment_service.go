package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shopstack/auth-platform/internal/domain"
	"github.com/shopstack/auth-platform/internal/events"
	"github.com/shopstack/auth-platform/internal/repository"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

// PaymentService records payment intents and applies webhook updates. It is
// request/response glue; provider integration stays out of scope.
type PaymentService struct {
	payments   repository.PaymentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPaymentService builds the service.
func NewPaymentService(payments repository.PaymentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{payments: payments, dispatcher: dispatcher, logger: logger}
}

// CreateIntent validates and records a new payment intent.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, amount int64, currency string) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.NewDomainError("MISSING_AMOUNT", "amount is required", http.StatusBadRequest, nil)
	}
	if currency == "" {
		return nil, apperrors.NewDomainError("MISSING_CURRENCY", "currency is required", http.StatusBadRequest, nil)
	}

	payment := &domain.Payment{
		IntentID: uuid.NewString(),
		UserID:   userID,
		Amount:   amount,
		Currency: currency,
		Status:   domain.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPaymentRecorded,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload: events.PaymentRecordedPayload{
				IntentID: payment.IntentID,
				Amount:   payment.Amount,
				Currency: payment.Currency,
				Status:   payment.Status,
			},
		})
	}
	return payment, nil
}

// ApplyWebhook updates a recorded intent's status. Unknown intents are
// logged rather than failed so the provider is always acknowledged.
func (s *PaymentService) ApplyWebhook(ctx context.Context, intentID string, status domain.PaymentStatus) error {
	if err := s.payments.UpdateStatusByIntentID(ctx, intentID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("webhook for unknown intent", zap.String("intent_id", intentID))
			return nil
		}
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}
