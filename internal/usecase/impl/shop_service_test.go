package impl

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"
	mockService "unishare/internal/mocks/service"
	mockUsecase "unishare/internal/mocks/usecase"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shopServiceFixtures struct {
	service   usecase.ShopUsecase
	txManager *mockRepo.MockTransactionManager
	qrService *mockService.MockQRCodeService
	evaluator *mockUsecase.MockBadgeUsecase
	publisher *mockService.MockEventPublisher
}

func createTestShopService(t *testing.T) shopServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	qrService := mockService.NewMockQRCodeService(t)
	evaluator := mockUsecase.NewMockBadgeUsecase(t)
	publisher := mockService.NewMockEventPublisher(t)
	service := NewShopService(txManager, qrService, evaluator, publisher, testLogger())

	return shopServiceFixtures{
		service:   service,
		txManager: txManager,
		qrService: qrService,
		evaluator: evaluator,
		publisher: publisher,
	}
}

func TestShopService_Purchase_Success(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.ShopItem{ID: uuid.New(), Name: "Coffee Voucher", Cost: 30, IsActive: true}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	factory.On("NewProfileRepository").Return(profileRepo)

	shopRepo.On("FindActiveItemByID", ctx, item.ID).Return(item, nil)
	profileRepo.On("DeductPoints", ctx, userID, 30).Return(&entity.Profile{UserID: userID, Points: 70}, nil)
	shopRepo.On("CreatePurchase", ctx, mock.MatchedBy(func(p *entity.ShopPurchase) bool {
		return p.UserID == userID && p.ItemID == item.ID && p.PointsSpent == 30
	})).Return(nil)
	runTx(fx.txManager, factory)

	fx.evaluator.On("EvaluateBadges", ctx, userID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	purchase, err := fx.service.Purchase(ctx, userID, item.ID)

	require.NoError(t, err)
	assert.Equal(t, 30, purchase.PointsSpent)
	assert.Equal(t, item, purchase.Item)
	fx.evaluator.AssertCalled(t, "EvaluateBadges", ctx, userID)
}

func TestShopService_Purchase_InsufficientBalance_NoRecord(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.ShopItem{ID: uuid.New(), Name: "Hoodie", Cost: 400, IsActive: true}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	factory.On("NewProfileRepository").Return(profileRepo)

	shopRepo.On("FindActiveItemByID", ctx, item.ID).Return(item, nil)
	profileRepo.On("DeductPoints", ctx, userID, 400).Return(nil, repository.ErrInsufficientPoints)
	runTx(fx.txManager, factory)

	purchase, err := fx.service.Purchase(ctx, userID, item.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	assert.Nil(t, purchase)
	shopRepo.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
	fx.evaluator.AssertNotCalled(t, "EvaluateBadges", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishBadgeEvent", mock.Anything, mock.Anything)
}

func TestShopService_Purchase_InactiveItem(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	shopRepo.On("FindActiveItemByID", ctx, itemID).Return(nil, repository.ErrItemNotFound)
	runTx(fx.txManager, factory)

	purchase, err := fx.service.Purchase(ctx, userID, itemID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
	assert.Nil(t, purchase)
}

func TestShopService_ListItems(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	catalog := []*entity.ShopItem{
		{ID: uuid.New(), Name: "Coffee Voucher", Cost: 30},
		{ID: uuid.New(), Name: "Tote Bag", Cost: 120},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	shopRepo.On("ListActiveItems", ctx).Return(catalog, nil)
	runTx(fx.txManager, factory)

	items, err := fx.service.ListItems(ctx)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestShopService_GetVoucher_Success(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	userID := uuid.New()
	purchase := &entity.ShopPurchase{ID: uuid.New(), UserID: userID, PointsSpent: 30}
	qrBytes := []byte{0x89, 0x50, 0x4E, 0x47}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	shopRepo.On("FindPurchaseByID", ctx, purchase.ID).Return(purchase, nil)
	runTx(fx.txManager, factory)

	fx.qrService.On("GenerateVoucherQR", purchase.ID).Return(qrBytes, nil)

	voucher, err := fx.service.GetVoucher(ctx, userID, purchase.ID)

	require.NoError(t, err)
	assert.Equal(t, qrBytes, voucher)
}

func TestShopService_GetVoucher_OtherUsersPurchase(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	owner := uuid.New()
	caller := uuid.New()
	purchase := &entity.ShopPurchase{ID: uuid.New(), UserID: owner}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	shopRepo.On("FindPurchaseByID", ctx, purchase.ID).Return(purchase, nil)
	runTx(fx.txManager, factory)

	voucher, err := fx.service.GetVoucher(ctx, caller, purchase.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPurchaseNotFound)
	assert.Nil(t, voucher)
	fx.qrService.AssertNotCalled(t, "GenerateVoucherQR", mock.Anything)
}

func TestShopService_ListPurchases(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	userID := uuid.New()
	history := []*entity.ShopPurchase{
		{ID: uuid.New(), UserID: userID, PointsSpent: 30},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	factory.On("NewShopRepository").Return(shopRepo)
	shopRepo.On("ListPurchasesByUser", ctx, userID, 20, 0).Return(history, nil)
	runTx(fx.txManager, factory)

	purchases, err := fx.service.ListPurchases(ctx, userID, 20, 0)

	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}
