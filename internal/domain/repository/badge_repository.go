// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBadgeNotFound is returned when a badge is not found.
var ErrBadgeNotFound = errors.New("badge not found")

// BadgeRepository defines the interface for badge catalog and award persistence.
type BadgeRepository interface {
	// FindByID retrieves a badge definition by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Badge, error)

	// ListAll retrieves the full badge catalog.
	ListAll(ctx context.Context) ([]*entity.Badge, error)

	// ListByTypes retrieves badge definitions matching any of the given types.
	ListByTypes(ctx context.Context, types []entity.BadgeType) ([]*entity.Badge, error)

	// CreateBadge persists a new badge definition. Used by catalog seeding.
	CreateBadge(ctx context.Context, badge *entity.Badge) error

	// Award grants a badge to a user. Awarding an already-held badge is a
	// no-op; the returned bool reports whether a new award was recorded.
	Award(ctx context.Context, userID, badgeID uuid.UUID) (bool, error)

	// ListUserBadges retrieves all badges held by a user, newest first,
	// with the badge definitions populated.
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error)

	// CountersFor computes the achievement counters a badge evaluation
	// reads: approved uploads, ratings given, comments written, and the
	// current point balance.
	CountersFor(ctx context.Context, userID uuid.UUID) (*entity.AchievementCounters, error)
}
