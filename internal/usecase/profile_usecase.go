// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile and point ledger operations.
type ProfileUsecase interface {
	// GetOrCreateProfile returns the user's profile, creating it on first
	// access with a display name derived from the account. Creation also
	// grants the joining badge.
	GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// GetProfile returns an existing profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// UpdateProfile updates the caller's editable profile fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)

	// CreditPoints adds points to a profile's balance.
	CreditPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error)

	// DebitPoints removes points from a profile's balance, failing when the
	// balance is insufficient.
	DebitPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error)

	// SetVerified marks a profile as verified and grants verification badges.
	SetVerified(ctx context.Context, userID uuid.UUID) error

	// GetLeaderboard returns the top profiles by point balance.
	GetLeaderboard(ctx context.Context, limit int) ([]*entity.Profile, error)

	// Follow subscribes the user to a subject or faculty. Re-following
	// the same target is a no-op.
	Follow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) (*entity.Follow, error)

	// Unfollow removes the user's subscription to a target.
	Unfollow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) error

	// ListFollows returns the user's follow subscriptions, newest first.
	ListFollows(ctx context.Context, userID uuid.UUID) ([]*entity.Follow, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the data required to update a profile.
type UpdateProfileInput struct {
	DisplayName *string `json:"display_name,omitempty"`
	Faculty     *string `json:"faculty,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
}
