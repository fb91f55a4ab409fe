package impl

import (
	"context"
	"log/slog"

	"unishare/internal/domain/entity"
	"unishare/internal/domain/repository"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// counterDrivenTypes is the fixed set of badge types the evaluator may award.
var counterDrivenTypes = []entity.BadgeType{
	entity.BadgeTypeUpload,
	entity.BadgeTypePoints,
	entity.BadgeTypeRating,
	entity.BadgeTypeComment,
}

// badgeService implements the BadgeUsecase interface.
type badgeService struct {
	txManager repository.TransactionManager
	notifier  usecase.NotificationUsecase
	logger    *slog.Logger
}

// NewBadgeService is the constructor for badgeService.
func NewBadgeService(
	txManager repository.TransactionManager,
	notifier usecase.NotificationUsecase,
	logger *slog.Logger,
) usecase.BadgeUsecase {
	return &badgeService{
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// EvaluateBadges recomputes the user's achievement counters from source
// tables and awards every counter-driven badge whose threshold is met.
// Awarding conflict-skips, so repeated or concurrent evaluations of the
// same user converge without duplicate grants.
func (srv *badgeService) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error) {
	var newlyAwarded []*entity.Badge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		badgeRepo := repoFactory.NewBadgeRepository()

		counters, err := badgeRepo.CountersFor(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to recompute achievement counters")
		}

		candidates, err := badgeRepo.ListByTypes(ctx, counterDrivenTypes)
		if err != nil {
			return errors.Wrap(err, "failed to list badge catalog")
		}

		for _, badge := range candidates {
			if !counters.Meets(badge) {
				continue
			}

			awarded, err := badgeRepo.Award(ctx, userID, badge.ID)
			if err != nil {
				return errors.Wrapf(err, "failed to award badge %s", badge.Name)
			}
			if awarded {
				newlyAwarded = append(newlyAwarded, badge)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, badge := range newlyAwarded {
		badgeID := badge.ID
		srv.notifyAwarded(ctx, userID, badge.Name, &badgeID)
	}

	if len(newlyAwarded) > 0 {
		srv.logger.Info("badges awarded",
			"userID", userID,
			"count", len(newlyAwarded),
		)
	}

	return newlyAwarded, nil
}

// ListCatalog returns every badge in the catalog.
func (srv *badgeService) ListCatalog(ctx context.Context) ([]*entity.Badge, error) {
	var badges []*entity.Badge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewBadgeRepository().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list badge catalog")
		}
		badges = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return badges, nil
}

// ListUserBadges returns the badges a member has earned, newest first.
func (srv *badgeService) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	var userBadges []*entity.UserBadge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewBadgeRepository().ListUserBadges(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list user badges")
		}
		userBadges = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return userBadges, nil
}

// notifyAwarded delivers the badge-earned notification. Delivery failures
// are logged and swallowed; the award itself already committed.
func (srv *badgeService) notifyAwarded(ctx context.Context, userID uuid.UUID, badgeName string, badgeID *uuid.UUID) {
	notification := &entity.Notification{
		UserID: userID,
		Type:   entity.NotificationBadgeAwarded,
		Title:  "Badge earned",
		Body:   badgeName,
		RefID:  badgeID,
	}
	if err := srv.notifier.NotifyUser(ctx, notification); err != nil {
		srv.logger.Warn("failed to notify badge award",
			"userID", userID,
			"badge", badgeName,
			"error", err,
		)
	}
}
