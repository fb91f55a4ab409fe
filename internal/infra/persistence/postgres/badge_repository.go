// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// badgeRepository implements the repository.BadgeRepository interface.
type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository is the constructor for badgeRepository.
func NewBadgeRepository(db *gorm.DB) repository.BadgeRepository {
	return &badgeRepository{
		db: db,
	}
}

// FindByID retrieves a badge definition by its unique ID.
func (repo *badgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Badge, error) {
	var badgeM model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&badgeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBadgeNotFound
		}

		return nil, errors.Wrap(err, "failed to find badge by ID")
	}

	return toBadgeDomain(&badgeM), nil
}

// ListAll retrieves the full badge catalog.
func (repo *badgeRepository) ListAll(ctx context.Context) ([]*entity.Badge, error) {
	var badgeModels []*model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Order("requirement ASC, name ASC").
		Find(&badgeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list badges")
	}

	badges := make([]*entity.Badge, 0, len(badgeModels))
	for _, badgeM := range badgeModels {
		badges = append(badges, toBadgeDomain(badgeM))
	}

	return badges, nil
}

// ListByTypes retrieves badge definitions matching any of the given types.
func (repo *badgeRepository) ListByTypes(ctx context.Context, types []entity.BadgeType) ([]*entity.Badge, error) {
	if len(types) == 0 {
		return nil, nil
	}

	typeStrings := make([]string, 0, len(types))
	for _, t := range types {
		typeStrings = append(typeStrings, string(t))
	}

	var badgeModels []*model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Where("type IN ?", typeStrings).
		Order("requirement ASC").
		Find(&badgeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list badges by types")
	}

	badges := make([]*entity.Badge, 0, len(badgeModels))
	for _, badgeM := range badgeModels {
		badges = append(badges, toBadgeDomain(badgeM))
	}

	return badges, nil
}

// CreateBadge persists a new badge definition.
func (repo *badgeRepository) CreateBadge(ctx context.Context, badge *entity.Badge) error {
	badgeM := fromBadgeDomain(badge)

	if err := repo.db.WithContext(ctx).Create(badgeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("badge name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create badge")
	}

	badge.ID = badgeM.ID

	return nil
}

// Award grants a badge to a user. ON CONFLICT DO NOTHING on the
// (user_id, badge_id) unique index makes repeated awards a no-op, so the
// evaluator can run concurrently without double-granting.
func (repo *badgeRepository) Award(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	awardM := &model.UserBadgeModel{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(awardM)

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return false, repository.ErrBadgeNotFound
		}

		return false, errors.Wrap(result.Error, "failed to award badge")
	}

	return result.RowsAffected > 0, nil
}

// ListUserBadges retrieves all badges held by a user, newest first.
func (repo *badgeRepository) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	var awardModels []*model.UserBadgeModel

	if err := repo.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awardModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list user badges")
	}

	awards := make([]*entity.UserBadge, 0, len(awardModels))
	for _, awardM := range awardModels {
		awards = append(awards, toUserBadgeDomain(awardM))
	}

	return awards, nil
}

// CountersFor recomputes the achievement counters from their source tables.
// Counters are always derived, never cached, so the evaluator can't act on
// stale numbers.
func (repo *badgeRepository) CountersFor(ctx context.Context, userID uuid.UUID) (*entity.AchievementCounters, error) {
	var approvedUploads int64
	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("uploader_id = ? AND status = ?", userID, string(entity.DocumentApproved)).
		Count(&approvedUploads).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count approved uploads")
	}

	var ratingsGiven int64
	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Count(&ratingsGiven).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count ratings given")
	}

	var commentsWritten int64
	if err := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("user_id = ?", userID).
		Count(&commentsWritten).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count comments written")
	}

	var profileM model.ProfileModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile for counters")
	}

	return &entity.AchievementCounters{
		ApprovedUploads: int(approvedUploads),
		RatingsGiven:    int(ratingsGiven),
		CommentsWritten: int(commentsWritten),
		Points:          profileM.Points,
	}, nil
}

// --- Mapper Functions ---

// toBadgeDomain converts a GORM BadgeModel to a domain Badge entity.
func toBadgeDomain(data *model.BadgeModel) *entity.Badge {
	if data == nil {
		return nil
	}

	return &entity.Badge{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Icon:        data.Icon,
		Color:       data.Color,
		Type:        entity.BadgeType(data.Type),
		Requirement: data.Requirement,
	}
}

// fromBadgeDomain converts a domain Badge entity to a GORM BadgeModel.
func fromBadgeDomain(data *entity.Badge) *model.BadgeModel {
	if data == nil {
		return nil
	}

	return &model.BadgeModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Icon:        data.Icon,
		Color:       data.Color,
		Type:        string(data.Type),
		Requirement: data.Requirement,
	}
}

// toUserBadgeDomain converts a GORM UserBadgeModel to a domain UserBadge entity.
func toUserBadgeDomain(data *model.UserBadgeModel) *entity.UserBadge {
	if data == nil {
		return nil
	}

	return &entity.UserBadge{
		ID:       data.ID,
		UserID:   data.UserID,
		BadgeID:  data.BadgeID,
		EarnedAt: data.EarnedAt,
		Badge:    toBadgeDomain(data.Badge),
	}
}
