package impl

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	mockRepo "unishare/internal/mocks/repository"
	mockService "unishare/internal/mocks/service"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationServiceFixtures struct {
	service     usecase.NotificationUsecase
	txManager   *mockRepo.MockTransactionManager
	pushService *mockService.MockPushService
}

func createTestNotificationService(t *testing.T) notificationServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	pushService := mockService.NewMockPushService(t)
	service := NewNotificationService(txManager, pushService, testLogger())

	return notificationServiceFixtures{
		service:     service,
		txManager:   txManager,
		pushService: pushService,
	}
}

func TestNotificationService_NotifyUser_PushesToActiveDevices(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()
	refID := uuid.New()
	notification := &entity.Notification{
		UserID: userID,
		Type:   entity.NotificationBadgeAwarded,
		Title:  "Badge earned",
		Body:   "First Share",
		RefID:  &refID,
	}
	devices := []*entity.UserDevice{
		{ID: uuid.New(), UserID: userID, FCMToken: "token-a", IsActive: true},
		{ID: uuid.New(), UserID: userID, FCMToken: "token-b", IsActive: true},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	factory.On("NewDeviceRepository").Return(deviceRepo)

	notificationRepo.On("CreateNotification", ctx, notification).Return(nil)
	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).Return(devices, nil)
	runTx(fx.txManager, factory)

	fx.pushService.On("SendBatchNotification", ctx, []string{"token-a", "token-b"}, "Badge earned", "First Share",
		map[string]string{"type": "badge_awarded", "ref_id": refID.String()}).
		Return(2, 0, nil, nil)

	err := fx.service.NotifyUser(ctx, notification)

	require.NoError(t, err)
}

func TestNotificationService_NotifyUser_NoDevices_SkipsPush(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	notification := &entity.Notification{UserID: uuid.New(), Type: entity.NotificationForumReply}

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	factory.On("NewDeviceRepository").Return(deviceRepo)

	notificationRepo.On("CreateNotification", ctx, notification).Return(nil)
	deviceRepo.On("FindActiveDevicesByUser", ctx, notification.UserID).Return(nil, nil)
	runTx(fx.txManager, factory)

	err := fx.service.NotifyUser(ctx, notification)

	require.NoError(t, err)
	fx.pushService.AssertNotCalled(t, "SendBatchNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_NotifyUser_DeactivatesInvalidTokens(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()
	notification := &entity.Notification{UserID: userID, Type: entity.NotificationDocumentApproved, Title: "t", Body: "b"}
	devices := []*entity.UserDevice{
		{UserID: userID, FCMToken: "stale-token", IsActive: true},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	factory.On("NewDeviceRepository").Return(deviceRepo)

	notificationRepo.On("CreateNotification", ctx, notification).Return(nil)
	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).Return(devices, nil)
	deviceRepo.On("DeactivateDevice", ctx, "stale-token").Return(nil)
	runTx(fx.txManager, factory)

	fx.pushService.On("SendBatchNotification", ctx, []string{"stale-token"}, "t", "b",
		map[string]string{"type": "document_approved"}).
		Return(0, 1, []string{"stale-token"}, nil)

	err := fx.service.NotifyUser(ctx, notification)

	require.NoError(t, err)
	deviceRepo.AssertCalled(t, "DeactivateDevice", ctx, "stale-token")
}

func TestNotificationService_NotifyUser_PushFailureDoesNotSurface(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()
	notification := &entity.Notification{UserID: userID, Type: entity.NotificationCommentReply, Title: "t", Body: "b"}
	devices := []*entity.UserDevice{{UserID: userID, FCMToken: "token-a", IsActive: true}}

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	factory.On("NewDeviceRepository").Return(deviceRepo)

	notificationRepo.On("CreateNotification", ctx, notification).Return(nil)
	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).Return(devices, nil)
	runTx(fx.txManager, factory)

	fx.pushService.On("SendBatchNotification", ctx, []string{"token-a"}, "t", "b",
		map[string]string{"type": "comment_reply"}).
		Return(0, 0, nil, assert.AnError)

	err := fx.service.NotifyUser(ctx, notification)

	require.NoError(t, err)
}

func TestNotificationService_RegisterDevice(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()
	info := &usecase.DeviceInfo{FCMToken: "new-token", Platform: "android"}

	factory := mockRepo.NewMockRepositoryFactory(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	factory.On("NewDeviceRepository").Return(deviceRepo)
	deviceRepo.On("RegisterDevice", ctx, mock.MatchedBy(func(d *entity.UserDevice) bool {
		return d.UserID == userID && d.FCMToken == "new-token" && d.IsActive
	})).Return(nil)
	runTx(fx.txManager, factory)

	device, err := fx.service.RegisterDevice(ctx, userID, info)

	require.NoError(t, err)
	assert.Equal(t, "android", device.Platform)
}

func TestNotificationService_MarkRead(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	notificationRepo.On("MarkRead", ctx, notificationID, userID).Return(nil)
	runTx(fx.txManager, factory)

	err := fx.service.MarkRead(ctx, userID, notificationID)

	require.NoError(t, err)
}

func TestNotificationService_CountUnread(t *testing.T) {
	fx := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	factory.On("NewNotificationRepository").Return(notificationRepo)
	notificationRepo.On("CountUnread", ctx, userID).Return(int64(3), nil)
	runTx(fx.txManager, factory)

	count, err := fx.service.CountUnread(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
