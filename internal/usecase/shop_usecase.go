package usecase

import (
	"context"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// ShopUsecase defines the interface for the points redemption shop.
type ShopUsecase interface {
	// ListItems returns the active catalog ordered by cost.
	ListItems(ctx context.Context) ([]*entity.ShopItem, error)

	// Purchase redeems an active item. The item cost is debited from the
	// buyer's balance and an immutable purchase record is written, both in
	// one transaction: a failed debit leaves no purchase behind.
	Purchase(ctx context.Context, userID, itemID uuid.UUID) (*entity.ShopPurchase, error)

	// ListPurchases returns the user's purchase history, newest first.
	ListPurchases(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ShopPurchase, error)

	// GetVoucher renders a QR voucher image for one of the user's purchases.
	GetVoucher(ctx context.Context, userID, purchaseID uuid.UUID) ([]byte, error)
}
