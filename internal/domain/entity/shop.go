// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShopItem is a catalog entry redeemable for points. Inactive items are
// invisible to the shop and cannot be purchased.
type ShopItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Cost        int // Price in points, always positive.
	Type        string
	Icon        string
	IsActive    bool
}

// ShopPurchase is the immutable record of a redemption. PointsSpent
// captures the item cost at purchase time; later catalog price changes
// never rewrite history.
type ShopPurchase struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ItemID      uuid.UUID
	PointsSpent int
	PurchasedAt time.Time

	Item *ShopItem // Populated on history reads.
}
