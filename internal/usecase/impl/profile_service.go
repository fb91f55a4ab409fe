// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/domain/service"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	evaluator usecase.BadgeUsecase
	notifier  usecase.NotificationUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	evaluator usecase.BadgeUsecase,
	notifier usecase.NotificationUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		evaluator: evaluator,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// GetOrCreateProfile returns the user's profile, creating it on first access
// with a display name derived from the owning account. The insert
// conflict-skips, so concurrent first requests for the same user all
// converge on the single created row.
func (srv *profileService) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile *entity.Profile
	created := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		found, err := profileRepo.FindByUserID(ctx, userID)
		if err == nil {
			profile = found

			return nil
		}
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to look up profile")
		}

		account, err := repoFactory.NewAccountRepository().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find account")
		}

		fresh := &entity.Profile{
			UserID:      userID,
			DisplayName: displayNameFromEmail(account.Email),
			Role:        entity.RoleStudent,
			JoinedAt:    time.Now(),
		}
		if err := profileRepo.CreateIfAbsent(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}

		// Re-read: a concurrent request may have won the insert.
		found, err = profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload profile after create")
		}
		profile = found
		created = true

		// Grant the joining badge with the profile in the same transaction.
		badgeRepo := repoFactory.NewBadgeRepository()
		joinBadges, err := badgeRepo.ListByTypes(ctx, []entity.BadgeType{entity.BadgeTypeJoin})
		if err != nil {
			return errors.Wrap(err, "failed to list joining badges")
		}
		for _, badge := range joinBadges {
			if _, err := badgeRepo.Award(ctx, userID, badge.ID); err != nil {
				return errors.Wrapf(err, "failed to award badge %s", badge.Name)
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get or create profile")
	}

	if created {
		srv.logger.Info("profile created", "userID", userID)
	}

	return profile, nil
}

// displayNameFromEmail derives a readable default display name from the
// account's email address.
func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

// GetProfile returns an existing profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProfileRepository().FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile updates the caller's editable profile fields.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		found, err := profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if input.DisplayName != nil {
			found.DisplayName = *input.DisplayName
		}
		if input.Faculty != nil {
			found.Faculty = *input.Faculty
		}
		if input.Bio != nil {
			found.Bio = *input.Bio
		}
		if input.StudentID != nil {
			found.StudentID = *input.StudentID
		}

		if err := profileRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// CreditPoints adds points to a profile's balance.
func (srv *profileService) CreditPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	if amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		updated, err := repoFactory.NewProfileRepository().AddPoints(ctx, userID, amount)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to credit points")
		}
		profile = updated

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishPointsChanged(ctx, userID)

	return profile, nil
}

// DebitPoints removes points from a profile's balance.
func (srv *profileService) DebitPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	if amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		updated, err := repoFactory.NewProfileRepository().DeductPoints(ctx, userID, amount)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}
			if errors.Is(err, repository.ErrInsufficientPoints) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(err, "failed to debit points")
		}
		profile = updated

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishPointsChanged(ctx, userID)

	return profile, nil
}

// SetVerified marks a profile as verified and grants verification badges.
// Badge notifications go out after the grants commit.
func (srv *profileService) SetVerified(ctx context.Context, userID uuid.UUID) error {
	var awardedBadges []*entity.Badge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		if err := profileRepo.SetVerified(ctx, userID, true); err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to set verified flag")
		}

		badgeRepo := repoFactory.NewBadgeRepository()
		verifiedBadges, err := badgeRepo.ListByTypes(ctx, []entity.BadgeType{entity.BadgeTypeVerified})
		if err != nil {
			return errors.Wrap(err, "failed to list verification badges")
		}

		for _, badge := range verifiedBadges {
			awarded, err := badgeRepo.Award(ctx, userID, badge.ID)
			if err != nil {
				return errors.Wrapf(err, "failed to award badge %s", badge.Name)
			}
			if awarded {
				awardedBadges = append(awardedBadges, badge)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, badge := range awardedBadges {
		badgeID := badge.ID
		notification := &entity.Notification{
			UserID: userID,
			Type:   entity.NotificationBadgeAwarded,
			Title:  "Badge earned",
			Body:   badge.Name,
			RefID:  &badgeID,
		}
		if err := srv.notifier.NotifyUser(ctx, notification); err != nil {
			srv.logger.Warn("failed to notify badge award",
				"userID", userID,
				"badge", badge.Name,
				"error", err,
			)
		}
	}

	srv.logger.Info("profile verified", "userID", userID)

	return nil
}

// GetLeaderboard returns the top profiles by point balance.
func (srv *profileService) GetLeaderboard(ctx context.Context, limit int) ([]*entity.Profile, error) {
	var profiles []*entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProfileRepository().ListTopByPoints(ctx, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list leaderboard")
		}
		profiles = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// Follow subscribes the user to a subject or faculty. The insert skips
// conflicting rows, so re-following the same target is a no-op.
func (srv *profileService) Follow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) (*entity.Follow, error) {
	follow := &entity.Follow{
		UserID:      userID,
		TargetType:  targetType,
		TargetValue: targetValue,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewProfileRepository().CreateFollow(ctx, follow); err != nil {
			return errors.Wrap(err, "failed to create follow")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("follow created",
		"userID", userID,
		"targetType", targetType,
		"targetValue", targetValue,
	)

	return follow, nil
}

// Unfollow removes a subscription. Removing an absent one is a no-op.
func (srv *profileService) Unfollow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewProfileRepository().DeleteFollow(ctx, userID, targetType, targetValue); err != nil {
			return errors.Wrap(err, "failed to delete follow")
		}

		return nil
	})
}

// ListFollows returns the user's follow subscriptions, newest first.
func (srv *profileService) ListFollows(ctx context.Context, userID uuid.UUID) ([]*entity.Follow, error) {
	var follows []*entity.Follow

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProfileRepository().ListFollows(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list follows")
		}
		follows = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return follows, nil
}

// publishPointsChanged evaluates badges after a balance change and emits
// the matching event for off-process consumers. Failures are logged and
// swallowed; the ledger write already committed and the evaluator is
// idempotent on the next trigger.
func (srv *profileService) publishPointsChanged(ctx context.Context, userID uuid.UUID) {
	if _, err := srv.evaluator.EvaluateBadges(ctx, userID); err != nil {
		srv.logger.Warn("failed to evaluate badges",
			"userID", userID,
			"trigger", service.TriggerPointsChanged,
			"error", err,
		)
	}

	event := &service.BadgeEvent{
		UserID:  userID.String(),
		Trigger: service.TriggerPointsChanged,
	}
	if err := srv.publisher.PublishBadgeEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish badge event",
			"userID", userID,
			"trigger", event.Trigger,
			"error", err,
		)
	}
}
