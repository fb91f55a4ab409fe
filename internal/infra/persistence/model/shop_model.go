package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopItemModel mirrors the 'shop_items' table, the redemption catalog.
type ShopItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	Cost        int       `gorm:"not null;check:cost > 0"`
	Type        string    `gorm:"type:varchar(50)"`
	Icon        string    `gorm:"type:varchar(100)"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopItemModel) TableName() string {
	return "shop_items"
}

// ShopPurchaseModel mirrors the 'shop_purchases' table. Rows are immutable;
// points_spent snapshots the item cost at purchase time.
type ShopPurchaseModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	PointsSpent int       `gorm:"not null"`
	PurchasedAt time.Time

	Item *ShopItemModel `gorm:"foreignKey:ItemID"`
}

// TableName explicitly sets the table name for GORM.
func (ShopPurchaseModel) TableName() string {
	return "shop_purchases"
}
