// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInsufficientPoints is returned when a debit would drive the balance negative.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// ProfileRepository defines the standard operations for profile and point ledger persistence.
// The application layer will depend on this interface, not the concrete implementation.
type ProfileRepository interface {
	// FindByUserID retrieves a single profile by the owning user's ID.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile. Duplicate user IDs are rejected by the storage.
	Create(ctx context.Context, profile *entity.Profile) error

	// CreateIfAbsent inserts the profile unless one already exists for the user.
	// Concurrent callers racing on the same user all converge on a single row.
	CreateIfAbsent(ctx context.Context, profile *entity.Profile) error

	// Update modifies mutable profile fields (display name, faculty, bio).
	Update(ctx context.Context, profile *entity.Profile) error

	// AddPoints atomically credits amount to the profile's balance and
	// returns the updated profile. Amount must be positive.
	AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error)

	// DeductPoints atomically debits amount from the profile's balance.
	// It fails with ErrInsufficientPoints when the balance is lower than
	// amount; the balance never goes negative.
	DeductPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error)

	// SetVerified flips the verified flag on a profile.
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error

	// ListTopByPoints retrieves the highest-scoring profiles for the leaderboard.
	ListTopByPoints(ctx context.Context, limit int) ([]*entity.Profile, error)

	// CountAll returns the total number of profiles.
	CountAll(ctx context.Context) (int64, error)

	// CreateFollow persists a follow subscription. Re-following the same
	// target conflict-skips, so the call is idempotent.
	CreateFollow(ctx context.Context, follow *entity.Follow) error

	// DeleteFollow removes the user's subscription to the given target.
	// Removing a follow that does not exist is a no-op.
	DeleteFollow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) error

	// ListFollows retrieves the user's follow subscriptions, newest first.
	ListFollows(ctx context.Context, userID uuid.UUID) ([]*entity.Follow, error)
}
