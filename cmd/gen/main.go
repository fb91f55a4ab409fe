package main

import (
	"unishare/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.AccountModel{},
		model.RefreshTokenModel{},
		model.ProfileModel{},
		model.BadgeModel{},
		model.UserBadgeModel{},
		model.DocumentModel{},
		model.RatingModel{},
		model.CommentModel{},
		model.DownloadModel{},
		model.ForumThreadModel{},
		model.ForumReplyModel{},
		model.ShopItemModel{},
		model.ShopPurchaseModel{},
		model.NotificationModel{},
		model.UserDeviceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
