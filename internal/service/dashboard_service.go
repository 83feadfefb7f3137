package service

import (
	"context"

	"github.com/shopstack/auth-platform/internal/repository"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

// DashboardSummary aggregates counters shown on the backend dashboard.
type DashboardSummary struct {
	UserCount    int64
	PaymentCount int64
}

// DashboardService answers aggregation queries for the backend service.
type DashboardService struct {
	users    repository.UserRepository
	payments repository.PaymentRepository
}

// NewDashboardService builds the service.
func NewDashboardService(users repository.UserRepository, payments repository.PaymentRepository) *DashboardService {
	return &DashboardService{users: users, payments: payments}
}

// Summary counts users and recorded payments.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	paymentCount, err := s.payments.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return &DashboardSummary{UserCount: userCount, PaymentCount: paymentCount}, nil
}
