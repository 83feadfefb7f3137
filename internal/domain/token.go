package domain

import "time"

// TokenPair carries both credentials returned by a successful login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// RefreshToken is the persisted record backing a long-lived refresh
// credential. The row can be revoked independently of the token's
// cryptographic validity.
type RefreshToken struct {
	ID         int64
	UserID     int64
	Token      string
	ExpiryDate time.Time
	CreatedAt  time.Time
}

// Expired reports whether the stored row is past its validity window.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiryDate)
}
