// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrDeviceNotFound is returned when a device is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines the interface for push device registration persistence.
type DeviceRepository interface {
	// RegisterDevice persists a device token for a user. Re-registering an
	// existing token reactivates it and refreshes the platform field.
	RegisterDevice(ctx context.Context, device *entity.UserDevice) error

	// FindActiveDevicesByUser retrieves all active devices for a specific user.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice marks a device inactive by its token. Used when the
	// push provider reports the token as stale.
	DeactivateDevice(ctx context.Context, fcmToken string) error
}
