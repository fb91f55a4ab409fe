package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authentication identity behind a profile. Credentials
// live here; everything readers see lives on Profile.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is a stored, hashed refresh credential. Rotation replaces
// the row; revocation flips IsRevoked without deleting history.
type RefreshToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	IsRevoked bool
	CreatedAt time.Time
}

// Valid reports whether the token can still be exchanged.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
