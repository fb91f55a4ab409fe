// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shopRepository implements the repository.ShopRepository interface.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{
		db: db,
	}
}

// FindItemByID retrieves a shop item by its unique ID, active or not.
func (repo *shopRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error) {
	var itemM model.ShopItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop item by ID")
	}

	return toShopItemDomain(&itemM), nil
}

// FindActiveItemByID retrieves a shop item only if it is active.
// Deactivated items are indistinguishable from missing ones to callers.
func (repo *shopRepository) FindActiveItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error) {
	var itemM model.ShopItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find active shop item")
	}

	return toShopItemDomain(&itemM), nil
}

// ListActiveItems retrieves the purchasable catalog ordered by cost.
func (repo *shopRepository) ListActiveItems(ctx context.Context) ([]*entity.ShopItem, error) {
	var itemModels []*model.ShopItemModel

	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("cost ASC, name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active shop items")
	}

	items := make([]*entity.ShopItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toShopItemDomain(itemM))
	}

	return items, nil
}

// CreateItem persists a new catalog item.
func (repo *shopRepository) CreateItem(ctx context.Context, item *entity.ShopItem) error {
	itemM := fromShopItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidAmount.WrapMessage("item cost must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop item")
	}

	item.ID = itemM.ID

	return nil
}

// CreatePurchase appends an immutable purchase record.
func (repo *shopRepository) CreatePurchase(ctx context.Context, purchase *entity.ShopPurchase) error {
	purchaseM := fromShopPurchaseDomain(purchase)
	if purchaseM.PurchasedAt.IsZero() {
		purchaseM.PurchasedAt = time.Now()
	}

	if err := repo.db.WithContext(ctx).Create(purchaseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create purchase")
	}

	purchase.ID = purchaseM.ID
	purchase.PurchasedAt = purchaseM.PurchasedAt

	return nil
}

// FindPurchaseByID retrieves a purchase with its item populated.
func (repo *shopRepository) FindPurchaseByID(ctx context.Context, id uuid.UUID) (*entity.ShopPurchase, error) {
	var purchaseM model.ShopPurchaseModel

	if err := repo.db.WithContext(ctx).
		Preload("Item").
		Where("id = ?", id).
		First(&purchaseM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPurchaseNotFound
		}

		return nil, errors.Wrap(err, "failed to find purchase by ID")
	}

	return toShopPurchaseDomain(&purchaseM), nil
}

// ListPurchasesByUser retrieves a user's purchase history, newest first.
func (repo *shopRepository) ListPurchasesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ShopPurchase, error) {
	var purchaseModels []*model.ShopPurchaseModel

	query := repo.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("purchased_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&purchaseModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list purchases by user")
	}

	purchases := make([]*entity.ShopPurchase, 0, len(purchaseModels))
	for _, purchaseM := range purchaseModels {
		purchases = append(purchases, toShopPurchaseDomain(purchaseM))
	}

	return purchases, nil
}

// --- Mapper Functions ---

// toShopItemDomain converts a GORM ShopItemModel to a domain ShopItem entity.
func toShopItemDomain(data *model.ShopItemModel) *entity.ShopItem {
	if data == nil {
		return nil
	}

	return &entity.ShopItem{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Cost:        data.Cost,
		Type:        data.Type,
		Icon:        data.Icon,
		IsActive:    data.IsActive,
	}
}

// fromShopItemDomain converts a domain ShopItem entity to a GORM ShopItemModel.
func fromShopItemDomain(data *entity.ShopItem) *model.ShopItemModel {
	if data == nil {
		return nil
	}

	return &model.ShopItemModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Cost:        data.Cost,
		Type:        data.Type,
		Icon:        data.Icon,
		IsActive:    data.IsActive,
	}
}

// toShopPurchaseDomain converts a GORM ShopPurchaseModel to a domain ShopPurchase entity.
func toShopPurchaseDomain(data *model.ShopPurchaseModel) *entity.ShopPurchase {
	if data == nil {
		return nil
	}

	return &entity.ShopPurchase{
		ID:          data.ID,
		UserID:      data.UserID,
		ItemID:      data.ItemID,
		PointsSpent: data.PointsSpent,
		PurchasedAt: data.PurchasedAt,
		Item:        toShopItemDomain(data.Item),
	}
}

// fromShopPurchaseDomain converts a domain ShopPurchase entity to a GORM ShopPurchaseModel.
func fromShopPurchaseDomain(data *entity.ShopPurchase) *model.ShopPurchaseModel {
	if data == nil {
		return nil
	}

	return &model.ShopPurchaseModel{
		ID:          data.ID,
		UserID:      data.UserID,
		ItemID:      data.ItemID,
		PointsSpent: data.PointsSpent,
		PurchasedAt: data.PurchasedAt,
	}
}
