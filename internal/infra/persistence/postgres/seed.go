package postgres

import (
	"context"
	"log/slog"

	"unishare/internal/domain/entity"
	"unishare/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultBadges is the canonical badge catalog. Requirements are counter
// thresholds; join and verified badges carry none.
var defaultBadges = []model.BadgeModel{
	{Name: "Newcomer", Description: "Joined the platform", Icon: "user-plus", Color: "#22c55e", Type: string(entity.BadgeTypeJoin), Requirement: 0},
	{Name: "First Share", Description: "First approved document", Icon: "file-up", Color: "#3b82f6", Type: string(entity.BadgeTypeUpload), Requirement: 1},
	{Name: "Contributor", Description: "Five approved documents", Icon: "files", Color: "#6366f1", Type: string(entity.BadgeTypeUpload), Requirement: 5},
	{Name: "Librarian", Description: "Twenty approved documents", Icon: "library", Color: "#a855f7", Type: string(entity.BadgeTypeUpload), Requirement: 20},
	{Name: "Collector", Description: "Fifty points earned", Icon: "coins", Color: "#eab308", Type: string(entity.BadgeTypePoints), Requirement: 50},
	{Name: "Tycoon", Description: "Two hundred points earned", Icon: "gem", Color: "#f97316", Type: string(entity.BadgeTypePoints), Requirement: 200},
	{Name: "Critic", Description: "Ten ratings given", Icon: "star", Color: "#f59e0b", Type: string(entity.BadgeTypeRating), Requirement: 10},
	{Name: "Conversationalist", Description: "Ten comments written", Icon: "message-circle", Color: "#06b6d4", Type: string(entity.BadgeTypeComment), Requirement: 10},
	{Name: "Verified Member", Description: "Identity verified by staff", Icon: "badge-check", Color: "#10b981", Type: string(entity.BadgeTypeVerified), Requirement: 0},
}

// defaultShopItems is the initial redemption catalog.
var defaultShopItems = []model.ShopItemModel{
	{Name: "Coffee Voucher", Description: "A free coffee at the campus cafe", Cost: 30, Type: "voucher", Icon: "coffee", IsActive: true},
	{Name: "Print Credit", Description: "50 pages of printing at the library", Cost: 40, Type: "voucher", Icon: "printer", IsActive: true},
	{Name: "Campus Sticker Pack", Description: "Sticker pack with university mascots", Cost: 60, Type: "merch", IsActive: true, Icon: "sticker"},
	{Name: "Tote Bag", Description: "University tote bag", Cost: 120, Type: "merch", Icon: "shopping-bag", IsActive: true},
	{Name: "T-Shirt", Description: "University t-shirt", Cost: 200, Type: "merch", Icon: "shirt", IsActive: true},
	{Name: "Hoodie", Description: "University hoodie", Cost: 400, Type: "merch", Icon: "jacket", IsActive: true},
}

// Seed inserts the default badge and shop catalogs. Inserts conflict-skip on
// the unique name columns, so running it on every startup is safe.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	badges := make([]model.BadgeModel, len(defaultBadges))
	copy(badges, defaultBadges)

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&badges).Error; err != nil {
		return errors.Wrap(err, "failed to seed badge catalog")
	}

	items := make([]model.ShopItemModel, len(defaultShopItems))
	copy(items, defaultShopItems)

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&items).Error; err != nil {
		return errors.Wrap(err, "failed to seed shop catalog")
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "catalog seed completed",
		slog.Int("badges", len(badges)),
		slog.Int("shopItems", len(items)),
	)

	return nil
}
