// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindByUserID retrieves a single profile by the owning user's ID.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by user ID")
	}

	return toProfileDomain(&profileM), nil
}

// Create persists a new profile.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("profile already exists for this user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid account reference")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	// Update the entity with generated values
	profile.JoinedAt = profileM.JoinedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// CreateIfAbsent inserts the profile unless one already exists for the user.
// ON CONFLICT DO NOTHING makes concurrent first-access races converge on a
// single row without surfacing an error to any caller.
func (repo *profileRepository) CreateIfAbsent(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid account reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile if absent")
	}

	return nil
}

// Update modifies mutable profile fields.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"display_name": profile.DisplayName,
			"faculty":      profile.Faculty,
			"bio":          profile.Bio,
			"student_id":   profile.StudentID,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// AddPoints atomically credits amount to the profile's balance.
// The increment happens inside the UPDATE statement so concurrent credits
// never lose each other's writes.
func (repo *profileRepository) AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to add points")
	}

	if result.RowsAffected == 0 {
		return nil, repository.ErrProfileNotFound
	}

	return repo.FindByUserID(ctx, userID)
}

// DeductPoints atomically debits amount from the profile's balance.
// The balance guard lives in the WHERE clause of a single UPDATE, so two
// concurrent debits can never both succeed against one balance.
func (repo *profileRepository) DeductPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to deduct points")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing profile from an insufficient balance.
		if _, err := repo.FindByUserID(ctx, userID); err != nil {
			return nil, err
		}

		return nil, repository.ErrInsufficientPoints
	}

	return repo.FindByUserID(ctx, userID)
}

// SetVerified flips the verified flag on a profile.
func (repo *profileRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Update("verified", verified)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set verified flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// ListTopByPoints retrieves the highest-scoring profiles for the leaderboard.
func (repo *profileRepository) ListTopByPoints(ctx context.Context, limit int) ([]*entity.Profile, error) {
	var profileModels []*model.ProfileModel

	query := repo.db.WithContext(ctx).
		Order("points DESC, joined_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list top profiles")
	}

	profiles := make([]*entity.Profile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toProfileDomain(profileM))
	}

	return profiles, nil
}

// CountAll returns the total number of profiles.
func (repo *profileRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count profiles")
	}

	return count, nil
}

// CreateFollow persists a follow subscription. ON CONFLICT DO NOTHING on
// the (user_id, target_type, target_value) unique index makes re-following
// the same target a no-op.
func (repo *profileRepository) CreateFollow(ctx context.Context, follow *entity.Follow) error {
	followM := fromFollowDomain(follow)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "target_type"},
				{Name: "target_value"},
			},
			DoNothing: true,
		}).
		Create(followM).Error; err != nil {
		return errors.Wrap(err, "failed to create follow")
	}

	follow.ID = followM.ID
	follow.CreatedAt = followM.CreatedAt

	return nil
}

// DeleteFollow removes the user's subscription to the given target.
func (repo *profileRepository) DeleteFollow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_value = ?", userID, string(targetType), targetValue).
		Delete(&model.FollowModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete follow")
	}

	return nil
}

// ListFollows retrieves the user's follow subscriptions, newest first.
func (repo *profileRepository) ListFollows(ctx context.Context, userID uuid.UUID) ([]*entity.Follow, error) {
	var followModels []*model.FollowModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&followModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list follows")
	}

	follows := make([]*entity.Follow, 0, len(followModels))
	for _, followM := range followModels {
		follows = append(follows, toFollowDomain(followM))
	}

	return follows, nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		UserID:      data.UserID,
		DisplayName: data.DisplayName,
		Faculty:     data.Faculty,
		Bio:         data.Bio,
		StudentID:   data.StudentID,
		Role:        entity.Role(data.Role),
		Points:      data.Points,
		Verified:    data.Verified,
		JoinedAt:    data.JoinedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toFollowDomain converts a GORM FollowModel to a domain Follow entity.
func toFollowDomain(data *model.FollowModel) *entity.Follow {
	if data == nil {
		return nil
	}

	return &entity.Follow{
		ID:          data.ID,
		UserID:      data.UserID,
		TargetType:  entity.FollowTarget(data.TargetType),
		TargetValue: data.TargetValue,
		CreatedAt:   data.CreatedAt,
	}
}

// fromFollowDomain converts a domain Follow entity to a GORM FollowModel.
func fromFollowDomain(data *entity.Follow) *model.FollowModel {
	if data == nil {
		return nil
	}

	return &model.FollowModel{
		ID:          data.ID,
		UserID:      data.UserID,
		TargetType:  string(data.TargetType),
		TargetValue: data.TargetValue,
		CreatedAt:   data.CreatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		UserID:      data.UserID,
		DisplayName: data.DisplayName,
		Faculty:     data.Faculty,
		Bio:         data.Bio,
		StudentID:   data.StudentID,
		Role:        data.Role.String(),
		Points:      data.Points,
		Verified:    data.Verified,
		JoinedAt:    data.JoinedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
