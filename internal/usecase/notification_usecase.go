package usecase

import (
	"context"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for push registration
type DeviceInfo struct {
	FCMToken string `json:"fcm_token"`
	Platform string `json:"platform"`
}

// NotificationUsecase defines the interface for the in-app notification inbox
// and push device registration.
type NotificationUsecase interface {
	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// CountUnread returns the number of unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead marks all of the user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// RegisterDevice registers a push token for the user.
	RegisterDevice(ctx context.Context, userID uuid.UUID, info *DeviceInfo) (*entity.UserDevice, error)

	// NotifyUser writes an in-app notification and pushes it to the user's
	// active devices. Push failures are logged, never surfaced.
	NotifyUser(ctx context.Context, notification *entity.Notification) error
}
