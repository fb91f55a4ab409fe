// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for in-app notification persistence.
type NotificationRepository interface {
	// CreateNotification persists a new notification for a user.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks a single notification as read. The user ID guards
	// against marking another user's notification.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead marks all of a user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
