package impl

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"
	mockService "unishare/internal/mocks/service"
	mockUsecase "unishare/internal/mocks/usecase"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
	evaluator *mockUsecase.MockBadgeUsecase
	notifier  *mockUsecase.MockNotificationUsecase
	publisher *mockService.MockEventPublisher
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	evaluator := mockUsecase.NewMockBadgeUsecase(t)
	notifier := mockUsecase.NewMockNotificationUsecase(t)
	publisher := mockService.NewMockEventPublisher(t)
	service := NewProfileService(txManager, evaluator, notifier, publisher, testLogger())

	return profileServiceFixtures{
		service:   service,
		txManager: txManager,
		evaluator: evaluator,
		notifier:  notifier,
		publisher: publisher,
	}
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := &entity.Profile{
		UserID:      userID,
		DisplayName: "Test Student",
		Points:      42,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("FindByUserID", ctx, userID).Return(expected, nil)
	runTx(fx.txManager, factory)

	profile, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, profile)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("FindByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound)
	runTx(fx.txManager, factory)

	profile, err := fx.service.GetProfile(ctx, userID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
	assert.Nil(t, profile)
}

func TestProfileService_GetOrCreateProfile_CreatesOnFirstAccess(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	joinBadge := &entity.Badge{ID: uuid.New(), Name: "Newcomer", Type: entity.BadgeTypeJoin}
	account := &entity.Account{ID: userID, Email: "fresh.student@uni.edu"}
	created := &entity.Profile{
		UserID:      userID,
		DisplayName: "fresh.student",
		Role:        entity.RoleStudent,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewAccountRepository").Return(accountRepo)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	profileRepo.On("FindByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound).Once()
	accountRepo.On("FindByID", ctx, userID).Return(account, nil)
	profileRepo.On("CreateIfAbsent", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.UserID == userID && p.DisplayName == "fresh.student"
	})).Return(nil)
	profileRepo.On("FindByUserID", ctx, userID).Return(created, nil).Once()
	badgeRepo.On("ListByTypes", ctx, []entity.BadgeType{entity.BadgeTypeJoin}).Return([]*entity.Badge{joinBadge}, nil)
	badgeRepo.On("Award", ctx, userID, joinBadge.ID).Return(true, nil)
	runTx(fx.txManager, factory)

	profile, err := fx.service.GetOrCreateProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, created, profile)
}

func TestProfileService_GetOrCreateProfile_ReturnsExisting(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.Profile{UserID: userID, DisplayName: "Returning Student"}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("FindByUserID", ctx, userID).Return(existing, nil)
	runTx(fx.txManager, factory)

	profile, err := fx.service.GetOrCreateProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, existing, profile)
	profileRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestProfileService_CreditPoints_InvalidAmount(t *testing.T) {
	fx := createTestProfileService(t)

	_, err := fx.service.CreditPoints(context.Background(), uuid.New(), 0)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = fx.service.CreditPoints(context.Background(), uuid.New(), -5)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestProfileService_CreditPoints_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	updated := &entity.Profile{UserID: userID, Points: 110}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("AddPoints", ctx, userID, 10).Return(updated, nil)
	runTx(fx.txManager, factory)

	fx.evaluator.On("EvaluateBadges", ctx, userID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	profile, err := fx.service.CreditPoints(ctx, userID, 10)

	require.NoError(t, err)
	assert.Equal(t, 110, profile.Points)
}

func TestProfileService_DebitPoints_EvaluatesBadgesAfterCommit(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	updated := &entity.Profile{UserID: userID, Points: 40}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("DeductPoints", ctx, userID, 60).Return(updated, nil)
	runTx(fx.txManager, factory)

	fx.evaluator.On("EvaluateBadges", ctx, userID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	profile, err := fx.service.DebitPoints(ctx, userID, 60)

	require.NoError(t, err)
	assert.Equal(t, 40, profile.Points)
	fx.evaluator.AssertCalled(t, "EvaluateBadges", ctx, userID)
}

func TestProfileService_DebitPoints_InsufficientBalance(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("DeductPoints", ctx, userID, 100).Return(nil, repository.ErrInsufficientPoints)
	runTx(fx.txManager, factory)

	profile, err := fx.service.DebitPoints(ctx, userID, 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	assert.Nil(t, profile)
	fx.evaluator.AssertNotCalled(t, "EvaluateBadges", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishBadgeEvent", mock.Anything, mock.Anything)
}

func TestProfileService_SetVerified_AwardsBadgeOnce(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	verifiedBadge := &entity.Badge{ID: uuid.New(), Name: "Verified Member", Type: entity.BadgeTypeVerified}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	profileRepo.On("SetVerified", ctx, userID, true).Return(nil)
	badgeRepo.On("ListByTypes", ctx, []entity.BadgeType{entity.BadgeTypeVerified}).Return([]*entity.Badge{verifiedBadge}, nil)
	badgeRepo.On("Award", ctx, userID, verifiedBadge.ID).Return(true, nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID && n.Type == entity.NotificationBadgeAwarded && n.Body == verifiedBadge.Name
	})).Return(nil)

	err := fx.service.SetVerified(ctx, userID)

	require.NoError(t, err)
}

func TestProfileService_SetVerified_AlreadyAwarded_NoNotification(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	verifiedBadge := &entity.Badge{ID: uuid.New(), Name: "Verified Member", Type: entity.BadgeTypeVerified}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	profileRepo.On("SetVerified", ctx, userID, true).Return(nil)
	badgeRepo.On("ListByTypes", ctx, []entity.BadgeType{entity.BadgeTypeVerified}).Return([]*entity.Badge{verifiedBadge}, nil)
	badgeRepo.On("Award", ctx, userID, verifiedBadge.ID).Return(false, nil)
	runTx(fx.txManager, factory)

	err := fx.service.SetVerified(ctx, userID)

	require.NoError(t, err)
	fx.notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything)
}

func TestProfileService_GetLeaderboard(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	top := []*entity.Profile{
		{UserID: uuid.New(), Points: 500},
		{UserID: uuid.New(), Points: 300},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("ListTopByPoints", ctx, 10).Return(top, nil)
	runTx(fx.txManager, factory)

	profiles, err := fx.service.GetLeaderboard(ctx, 10)

	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, 500, profiles[0].Points)
}

func TestProfileService_Follow_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("CreateFollow", ctx, mock.MatchedBy(func(f *entity.Follow) bool {
		return f.UserID == userID && f.TargetType == entity.FollowSubject && f.TargetValue == "CS101"
	})).Return(nil)
	runTx(fx.txManager, factory)

	follow, err := fx.service.Follow(ctx, userID, entity.FollowSubject, "CS101")

	require.NoError(t, err)
	assert.Equal(t, entity.FollowSubject, follow.TargetType)
	assert.Equal(t, "CS101", follow.TargetValue)
}

func TestProfileService_Unfollow_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("DeleteFollow", ctx, userID, entity.FollowFaculty, "Engineering").Return(nil)
	runTx(fx.txManager, factory)

	err := fx.service.Unfollow(ctx, userID, entity.FollowFaculty, "Engineering")

	require.NoError(t, err)
}

func TestProfileService_ListFollows(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	follows := []*entity.Follow{
		{ID: uuid.New(), UserID: userID, TargetType: entity.FollowSubject, TargetValue: "CS101"},
		{ID: uuid.New(), UserID: userID, TargetType: entity.FollowFaculty, TargetValue: "Engineering"},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewProfileRepository").Return(profileRepo)
	profileRepo.On("ListFollows", ctx, userID).Return(follows, nil)
	runTx(fx.txManager, factory)

	got, err := fx.service.ListFollows(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "CS101", got[0].TargetValue)
}
