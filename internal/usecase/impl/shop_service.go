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

// shopService implements the ShopUsecase interface.
type shopService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	evaluator usecase.BadgeUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	evaluator usecase.BadgeUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.ShopUsecase {
	return &shopService{
		txManager: txManager,
		qrService: qrService,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger,
	}
}

// ListItems returns the active catalog ordered by cost.
func (srv *shopService) ListItems(ctx context.Context) ([]*entity.ShopItem, error) {
	var items []*entity.ShopItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewShopRepository().ListActiveItems(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list shop items")
		}
		items = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Purchase redeems an active item. The debit and the purchase record land
// in one transaction; the guarded balance update makes concurrent
// purchases against one balance safe without an explicit row lock.
func (srv *shopService) Purchase(ctx context.Context, userID, itemID uuid.UUID) (*entity.ShopPurchase, error) {
	var purchase *entity.ShopPurchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.NewShopRepository()

		item, err := shopRepo.FindActiveItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return domainerrors.ErrItemNotFound
			}

			return errors.Wrap(err, "failed to find shop item")
		}

		if _, err := repoFactory.NewProfileRepository().DeductPoints(ctx, userID, item.Cost); err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}
			if errors.Is(err, repository.ErrInsufficientPoints) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(err, "failed to debit purchase cost")
		}

		fresh := &entity.ShopPurchase{
			UserID:      userID,
			ItemID:      item.ID,
			PointsSpent: item.Cost,
			Item:        item,
		}
		if err := shopRepo.CreatePurchase(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create purchase record")
		}
		purchase = fresh

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("shop purchase completed",
		"userID", userID,
		"itemID", itemID,
		"pointsSpent", purchase.PointsSpent,
	)

	if _, err := srv.evaluator.EvaluateBadges(ctx, userID); err != nil {
		srv.logger.Warn("failed to evaluate badges",
			"userID", userID,
			"trigger", service.TriggerPointsChanged,
			"error", err,
		)
	}

	event := &service.BadgeEvent{
		UserID:  userID.String(),
		Trigger: service.TriggerPointsChanged,
	}
	if err := srv.publisher.PublishBadgeEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish badge event",
			"userID", userID,
			"trigger", event.Trigger,
			"error", err,
		)
	}

	return purchase, nil
}

// ListPurchases returns the user's purchase history, newest first.
func (srv *shopService) ListPurchases(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ShopPurchase, error) {
	var purchases []*entity.ShopPurchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewShopRepository().ListPurchasesByUser(ctx, userID, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list purchases")
		}
		purchases = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchases, nil
}

// GetVoucher renders a QR voucher for one of the caller's purchases.
// Requesting another member's purchase is treated as not found.
func (srv *shopService) GetVoucher(ctx context.Context, userID, purchaseID uuid.UUID) ([]byte, error) {
	var purchase *entity.ShopPurchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewShopRepository().FindPurchaseByID(ctx, purchaseID)
		if err != nil {
			if errors.Is(err, repository.ErrPurchaseNotFound) {
				return domainerrors.ErrPurchaseNotFound
			}

			return errors.Wrap(err, "failed to find purchase")
		}
		if found.UserID != userID {
			return domainerrors.ErrPurchaseNotFound
		}
		purchase = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	qrCode, err := srv.qrService.GenerateVoucherQR(purchase.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate voucher")
	}

	return qrCode, nil
}
