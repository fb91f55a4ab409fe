// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for shop persistence.
var (
	// ErrItemNotFound is returned when a shop item is not found or inactive.
	ErrItemNotFound = errors.New("shop item not found")
	// ErrPurchaseNotFound is returned when a purchase record is not found.
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// ShopRepository defines the interface for shop catalog and purchase persistence.
type ShopRepository interface {
	// FindItemByID retrieves a shop item by its unique ID, active or not.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error)

	// FindActiveItemByID retrieves a shop item only if it is active.
	FindActiveItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error)

	// ListActiveItems retrieves the purchasable catalog ordered by cost.
	ListActiveItems(ctx context.Context) ([]*entity.ShopItem, error)

	// CreateItem persists a new catalog item. Used by catalog seeding.
	CreateItem(ctx context.Context, item *entity.ShopItem) error

	// CreatePurchase appends an immutable purchase record.
	CreatePurchase(ctx context.Context, purchase *entity.ShopPurchase) error

	// FindPurchaseByID retrieves a purchase with its item populated.
	FindPurchaseByID(ctx context.Context, id uuid.UUID) (*entity.ShopPurchase, error)

	// ListPurchasesByUser retrieves a user's purchase history, newest
	// first, with items populated.
	ListPurchasesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ShopPurchase, error)
}
