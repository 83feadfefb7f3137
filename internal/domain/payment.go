package domain

import "time"

// PaymentStatus represents lifecycle states for a recorded payment intent.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records a payment intent created through the payment service.
type Payment struct {
	ID        int64
	IntentID  string
	UserID    int64
	Amount    int64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
}
