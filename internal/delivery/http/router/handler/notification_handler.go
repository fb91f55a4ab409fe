package handler

import (
	"log/slog"
	"net/http"

	"unishare/internal/delivery/http/response"
	"unishare/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for the notification inbox handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, logger: logger}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)

	notifications, err := h.uc.ListNotifications(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// CountUnread returns the caller's unread notification count.
func (h *NotificationHandler) CountUnread(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	count, err := h.uc.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread": count}, "")
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Notification read"}, "")
}

// MarkAllRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "All notifications read"}, "")
}

type registerDeviceRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// RegisterDevice registers a push token for the caller.
func (h *NotificationHandler) RegisterDevice(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req registerDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	device, err := h.uc.RegisterDevice(c.Request().Context(), userID, &usecase.DeviceInfo{
		FCMToken: req.FCMToken,
		Platform: req.Platform,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, device, "Device registered")
}
