package impl

import (
	"context"
	"log/slog"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/domain/service"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	txManager   repository.TransactionManager
	pushService service.PushService
	logger      *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(
	txManager repository.TransactionManager,
	pushService service.PushService,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		txManager:   txManager,
		pushService: pushService,
		logger:      logger,
	}
}

// ListNotifications returns the user's notifications, newest first.
func (srv *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var notifications []*entity.Notification

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewNotificationRepository().ListByUser(ctx, userID, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list notifications")
		}
		notifications = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications.
func (srv *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewNotificationRepository().CountUnread(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count unread notifications")
		}
		count = found

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.NewNotificationRepository().MarkRead(ctx, notificationID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotificationNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to mark notification read")
		}

		return nil
	})
}

// MarkAllRead marks all of the user's notifications as read.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewNotificationRepository().MarkAllRead(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to mark notifications read")
		}

		return nil
	})
}

// RegisterDevice registers a push token for the user. Re-registering an
// existing token reassigns it to the caller.
func (srv *notificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, info *usecase.DeviceInfo) (*entity.UserDevice, error) {
	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: info.FCMToken,
		Platform: info.Platform,
		IsActive: true,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewDeviceRepository().RegisterDevice(ctx, device); err != nil {
			return errors.Wrap(err, "failed to register device")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("device registered", "userID", userID, "platform", info.Platform)

	return device, nil
}

// NotifyUser writes an in-app notification and pushes it to the user's
// active devices. Push failures are logged, never surfaced: the inbox row
// is the source of truth, push is best effort.
func (srv *notificationService) NotifyUser(ctx context.Context, notification *entity.Notification) error {
	var devices []*entity.UserDevice

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewNotificationRepository().CreateNotification(ctx, notification); err != nil {
			return errors.Wrap(err, "failed to create notification")
		}

		found, err := repoFactory.NewDeviceRepository().FindActiveDevicesByUser(ctx, notification.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list devices")
		}
		devices = found

		return nil
	})
	if err != nil {
		return err
	}

	// Push delivery is optional; the in-app notification already landed.
	if srv.pushService == nil || len(devices) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{"type": string(notification.Type)}
	if notification.RefID != nil {
		data["ref_id"] = notification.RefID.String()
	}

	successCount, failureCount, invalidTokens, err := srv.pushService.SendBatchNotification(
		ctx, tokens, notification.Title, notification.Body, data)
	if err != nil {
		srv.logger.Warn("push delivery failed",
			"userID", notification.UserID,
			"error", err,
		)

		return nil
	}

	if failureCount > 0 {
		srv.logger.Warn("push delivery partially failed",
			"userID", notification.UserID,
			"success", successCount,
			"failure", failureCount,
		)
	}

	srv.deactivateTokens(ctx, invalidTokens)

	return nil
}

// deactivateTokens marks tokens the push provider reported as invalid so
// they are skipped on the next delivery.
func (srv *notificationService) deactivateTokens(ctx context.Context, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.NewDeviceRepository()
		for _, token := range tokens {
			if err := deviceRepo.DeactivateDevice(ctx, token); err != nil {
				return errors.Wrap(err, "failed to deactivate device")
			}
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("failed to deactivate invalid tokens", "count", len(tokens), "error", err)
	}
}
