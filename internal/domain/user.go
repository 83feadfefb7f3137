package domain

import "time"

// User is the domain model for a registered account (the authenticated
// principal). Email is the unique login key and is matched case-sensitively.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
