package impl

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	mockRepo "unishare/internal/mocks/repository"
	mockUsecase "unishare/internal/mocks/usecase"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type badgeServiceFixtures struct {
	service   usecase.BadgeUsecase
	txManager *mockRepo.MockTransactionManager
	notifier  *mockUsecase.MockNotificationUsecase
}

func createTestBadgeService(t *testing.T) badgeServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	notifier := mockUsecase.NewMockNotificationUsecase(t)
	service := NewBadgeService(txManager, notifier, testLogger())

	return badgeServiceFixtures{
		service:   service,
		txManager: txManager,
		notifier:  notifier,
	}
}

func TestBadgeService_EvaluateBadges_AwardsMetThresholds(t *testing.T) {
	fx := createTestBadgeService(t)

	ctx := context.Background()
	userID := uuid.New()
	counters := &entity.AchievementCounters{ApprovedUploads: 5, Points: 30}

	firstShare := &entity.Badge{ID: uuid.New(), Name: "First Share", Type: entity.BadgeTypeUpload, Requirement: 1}
	librarian := &entity.Badge{ID: uuid.New(), Name: "Librarian", Type: entity.BadgeTypeUpload, Requirement: 20}
	collector := &entity.Badge{ID: uuid.New(), Name: "Collector", Type: entity.BadgeTypePoints, Requirement: 50}
	catalog := []*entity.Badge{firstShare, librarian, collector}

	factory := mockRepo.NewMockRepositoryFactory(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	badgeRepo.On("CountersFor", ctx, userID).Return(counters, nil)
	badgeRepo.On("ListByTypes", ctx, counterDrivenTypes).Return(catalog, nil)
	badgeRepo.On("Award", ctx, userID, firstShare.ID).Return(true, nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID && n.Type == entity.NotificationBadgeAwarded && n.Body == "First Share"
	})).Return(nil)

	awarded, err := fx.service.EvaluateBadges(ctx, userID)

	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "First Share", awarded[0].Name)
	badgeRepo.AssertNotCalled(t, "Award", ctx, userID, librarian.ID)
	badgeRepo.AssertNotCalled(t, "Award", ctx, userID, collector.ID)
}

func TestBadgeService_EvaluateBadges_AlreadyHeld_NoRepeatNotification(t *testing.T) {
	fx := createTestBadgeService(t)

	ctx := context.Background()
	userID := uuid.New()
	counters := &entity.AchievementCounters{RatingsGiven: 10}
	critic := &entity.Badge{ID: uuid.New(), Name: "Critic", Type: entity.BadgeTypeRating, Requirement: 10}

	factory := mockRepo.NewMockRepositoryFactory(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	badgeRepo.On("CountersFor", ctx, userID).Return(counters, nil)
	badgeRepo.On("ListByTypes", ctx, counterDrivenTypes).Return([]*entity.Badge{critic}, nil)
	badgeRepo.On("Award", ctx, userID, critic.ID).Return(false, nil)
	runTx(fx.txManager, factory)

	awarded, err := fx.service.EvaluateBadges(ctx, userID)

	require.NoError(t, err)
	assert.Empty(t, awarded)
	fx.notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything)
}

func TestBadgeService_EvaluateBadges_NotificationFailureIsSwallowed(t *testing.T) {
	fx := createTestBadgeService(t)

	ctx := context.Background()
	userID := uuid.New()
	counters := &entity.AchievementCounters{CommentsWritten: 10}
	badge := &entity.Badge{ID: uuid.New(), Name: "Conversationalist", Type: entity.BadgeTypeComment, Requirement: 10}

	factory := mockRepo.NewMockRepositoryFactory(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewBadgeRepository").Return(badgeRepo)

	badgeRepo.On("CountersFor", ctx, userID).Return(counters, nil)
	badgeRepo.On("ListByTypes", ctx, counterDrivenTypes).Return([]*entity.Badge{badge}, nil)
	badgeRepo.On("Award", ctx, userID, badge.ID).Return(true, nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.Anything).Return(assert.AnError)

	awarded, err := fx.service.EvaluateBadges(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, awarded, 1)
}

func TestBadgeService_ListCatalog(t *testing.T) {
	fx := createTestBadgeService(t)

	ctx := context.Background()
	catalog := []*entity.Badge{
		{ID: uuid.New(), Name: "Newcomer", Type: entity.BadgeTypeJoin},
		{ID: uuid.New(), Name: "First Share", Type: entity.BadgeTypeUpload, Requirement: 1},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewBadgeRepository").Return(badgeRepo)
	badgeRepo.On("ListAll", ctx).Return(catalog, nil)
	runTx(fx.txManager, factory)

	badges, err := fx.service.ListCatalog(ctx)

	require.NoError(t, err)
	assert.Len(t, badges, 2)
}

func TestBadgeService_ListUserBadges(t *testing.T) {
	fx := createTestBadgeService(t)

	ctx := context.Background()
	userID := uuid.New()
	held := []*entity.UserBadge{
		{ID: uuid.New(), UserID: userID, BadgeID: uuid.New()},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	factory.On("NewBadgeRepository").Return(badgeRepo)
	badgeRepo.On("ListUserBadges", ctx, userID).Return(held, nil)
	runTx(fx.txManager, factory)

	badges, err := fx.service.ListUserBadges(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, badges, 1)
}
