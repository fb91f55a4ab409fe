package usecase

import (
	"context"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// BadgeUsecase defines the interface for badge catalog and achievement evaluation.
type BadgeUsecase interface {
	// EvaluateBadges recomputes the user's achievement counters and awards
	// every counter-driven badge whose threshold is met. It returns the
	// badges newly awarded by this evaluation; already-held badges are
	// silently skipped. Running it twice is always safe.
	EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error)

	// ListCatalog returns all badge definitions.
	ListCatalog(ctx context.Context) ([]*entity.Badge, error)

	// ListUserBadges returns the badges a user holds, newest first.
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error)
}
