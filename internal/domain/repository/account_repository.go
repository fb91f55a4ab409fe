// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the interface for authentication account persistence.
type AccountRepository interface {
	// FindByID retrieves an account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. Duplicate emails fail with ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
