// Package usecase provides hand-written testify mocks for the usecase
// interfaces consumed by other usecases.
package usecase

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationUsecase mocks usecase.NotificationUsecase.
type MockNotificationUsecase struct {
	mock.Mock
}

func NewMockNotificationUsecase(t *testing.T) *MockNotificationUsecase {
	m := &MockNotificationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationUsecase) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if n := args.Get(0); n != nil {
		return n.([]*entity.Notification), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNotificationUsecase) RegisterDevice(ctx context.Context, userID uuid.UUID, info *usecase.DeviceInfo) (*entity.UserDevice, error) {
	args := m.Called(ctx, userID, info)
	if d := args.Get(0); d != nil {
		return d.(*entity.UserDevice), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) NotifyUser(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

// MockBadgeUsecase mocks usecase.BadgeUsecase.
type MockBadgeUsecase struct {
	mock.Mock
}

func NewMockBadgeUsecase(t *testing.T) *MockBadgeUsecase {
	m := &MockBadgeUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBadgeUsecase) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error) {
	args := m.Called(ctx, userID)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Badge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeUsecase) ListCatalog(ctx context.Context) ([]*entity.Badge, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Badge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeUsecase) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	args := m.Called(ctx, userID)
	if b := args.Get(0); b != nil {
		return b.([]*entity.UserBadge), args.Error(1)
	}

	return nil, args.Error(1)
}
