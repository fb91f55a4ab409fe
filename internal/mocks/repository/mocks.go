// Package repository provides hand-written testify mocks for the
// persistence interfaces.
package repository

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	"unishare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return m.Called().Get(0).(repository.ProfileRepository)
}

func (m *MockRepositoryFactory) NewBadgeRepository() repository.BadgeRepository {
	return m.Called().Get(0).(repository.BadgeRepository)
}

func (m *MockRepositoryFactory) NewDocumentRepository() repository.DocumentRepository {
	return m.Called().Get(0).(repository.DocumentRepository)
}

func (m *MockRepositoryFactory) NewForumRepository() repository.ForumRepository {
	return m.Called().Get(0).(repository.ForumRepository)
}

func (m *MockRepositoryFactory) NewShopRepository() repository.ShopRepository {
	return m.Called().Get(0).(repository.ShopRepository)
}

func (m *MockRepositoryFactory) NewAccountRepository() repository.AccountRepository {
	return m.Called().Get(0).(repository.AccountRepository)
}

func (m *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return m.Called().Get(0).(repository.NotificationRepository)
}

func (m *MockRepositoryFactory) NewDeviceRepository() repository.DeviceRepository {
	return m.Called().Get(0).(repository.DeviceRepository)
}

// MockProfileRepository mocks repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) CreateIfAbsent(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	args := m.Called(ctx, userID, amount)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) DeductPoints(ctx context.Context, userID uuid.UUID, amount int) (*entity.Profile, error) {
	args := m.Called(ctx, userID, amount)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	return m.Called(ctx, userID, verified).Error(0)
}

func (m *MockProfileRepository) ListTopByPoints(ctx context.Context, limit int) ([]*entity.Profile, error) {
	args := m.Called(ctx, limit)
	if p := args.Get(0); p != nil {
		return p.([]*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) CreateFollow(ctx context.Context, follow *entity.Follow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *MockProfileRepository) DeleteFollow(ctx context.Context, userID uuid.UUID, targetType entity.FollowTarget, targetValue string) error {
	return m.Called(ctx, userID, targetType, targetValue).Error(0)
}

func (m *MockProfileRepository) ListFollows(ctx context.Context, userID uuid.UUID) ([]*entity.Follow, error) {
	args := m.Called(ctx, userID)
	if f := args.Get(0); f != nil {
		return f.([]*entity.Follow), args.Error(1)
	}

	return nil, args.Error(1)
}

// MockBadgeRepository mocks repository.BadgeRepository.
type MockBadgeRepository struct {
	mock.Mock
}

func NewMockBadgeRepository(t *testing.T) *MockBadgeRepository {
	m := &MockBadgeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBadgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Badge, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*entity.Badge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeRepository) ListAll(ctx context.Context) ([]*entity.Badge, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Badge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeRepository) ListByTypes(ctx context.Context, types []entity.BadgeType) ([]*entity.Badge, error) {
	args := m.Called(ctx, types)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Badge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeRepository) CreateBadge(ctx context.Context, badge *entity.Badge) error {
	return m.Called(ctx, badge).Error(0)
}

func (m *MockBadgeRepository) Award(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, badgeID)

	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	args := m.Called(ctx, userID)
	if b := args.Get(0); b != nil {
		return b.([]*entity.UserBadge), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBadgeRepository) CountersFor(ctx context.Context, userID uuid.UUID) (*entity.AchievementCounters, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*entity.AchievementCounters), args.Error(1)
	}

	return nil, args.Error(1)
}

// MockDocumentRepository mocks repository.DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func NewMockDocumentRepository(t *testing.T) *MockDocumentRepository {
	m := &MockDocumentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*entity.Document), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocumentRepository) List(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	args := m.Called(ctx, filter, limit, offset)
	if d := args.Get(0); d != nil {
		return d.([]*entity.Document), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter repository.DocumentFilter) (int64, error) {
	args := m.Called(ctx, filter)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status entity.DocumentStatus, reviewerID uuid.UUID, note string) error {
	return m.Called(ctx, id, status, reviewerID, note).Error(0)
}

func (m *MockDocumentRepository) CountApprovedByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, uploaderID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) RecordDownload(ctx context.Context, download *entity.Download) error {
	return m.Called(ctx, download).Error(0)
}

func (m *MockDocumentRepository) CreateRating(ctx context.Context, rating *entity.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockDocumentRepository) RecalculateRating(ctx context.Context, documentID uuid.UUID) error {
	return m.Called(ctx, documentID).Error(0)
}

func (m *MockDocumentRepository) FindRating(ctx context.Context, documentID, userID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, documentID, userID)
	if r := args.Get(0); r != nil {
		return r.(*entity.Rating), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocumentRepository) CountRatingsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockDocumentRepository) ListComments(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(ctx, documentID, limit, offset)
	if c := args.Get(0); c != nil {
		return c.([]*entity.Comment), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocumentRepository) CountCommentsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) ReviewStats(ctx context.Context) (*entity.ReviewStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*entity.ReviewStats), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocumentRepository) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*entity.PlatformStats), args.Error(1)
	}

	return nil, args.Error(1)
}

// MockForumRepository mocks repository.ForumRepository.
type MockForumRepository struct {
	mock.Mock
}

func NewMockForumRepository(t *testing.T) *MockForumRepository {
	m := &MockForumRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockForumRepository) CreateThread(ctx context.Context, thread *entity.ForumThread) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockForumRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.ForumThread, error) {
	args := m.Called(ctx, id)
	if th := args.Get(0); th != nil {
		return th.(*entity.ForumThread), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockForumRepository) ListThreads(ctx context.Context, filter repository.ThreadFilter, limit, offset int) ([]*entity.ForumThread, error) {
	args := m.Called(ctx, filter, limit, offset)
	if th := args.Get(0); th != nil {
		return th.([]*entity.ForumThread), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockForumRepository) IncrementViews(ctx context.Context, threadID uuid.UUID) error {
	return m.Called(ctx, threadID).Error(0)
}

func (m *MockForumRepository) SetPinned(ctx context.Context, threadID uuid.UUID, pinned bool) error {
	return m.Called(ctx, threadID, pinned).Error(0)
}

func (m *MockForumRepository) SetLocked(ctx context.Context, threadID uuid.UUID, locked bool) error {
	return m.Called(ctx, threadID, locked).Error(0)
}

func (m *MockForumRepository) CreateReply(ctx context.Context, reply *entity.ForumReply) error {
	return m.Called(ctx, reply).Error(0)
}

func (m *MockForumRepository) FindReplyByID(ctx context.Context, id uuid.UUID) (*entity.ForumReply, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entity.ForumReply), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockForumRepository) ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.ForumReply, error) {
	args := m.Called(ctx, threadID, limit, offset)
	if r := args.Get(0); r != nil {
		return r.([]*entity.ForumReply), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockForumRepository) MarkBestAnswer(ctx context.Context, threadID, replyID uuid.UUID) error {
	return m.Called(ctx, threadID, replyID).Error(0)
}

// MockShopRepository mocks repository.ShopRepository.
type MockShopRepository struct {
	mock.Mock
}

func NewMockShopRepository(t *testing.T) *MockShopRepository {
	m := &MockShopRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockShopRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*entity.ShopItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) FindActiveItemByID(ctx context.Context, id uuid.UUID) (*entity.ShopItem, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*entity.ShopItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) ListActiveItems(ctx context.Context) ([]*entity.ShopItem, error) {
	args := m.Called(ctx)
	if i := args.Get(0); i != nil {
		return i.([]*entity.ShopItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) CreateItem(ctx context.Context, item *entity.ShopItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockShopRepository) CreatePurchase(ctx context.Context, purchase *entity.ShopPurchase) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *MockShopRepository) FindPurchaseByID(ctx context.Context, id uuid.UUID) (*entity.ShopPurchase, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.ShopPurchase), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) ListPurchasesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ShopPurchase, error) {
	args := m.Called(ctx, userID, limit, offset)
	if p := args.Get(0); p != nil {
		return p.([]*entity.ShopPurchase), args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAccountRepository mocks repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*entity.Account), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if a := args.Get(0); a != nil {
		return a.(*entity.Account), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if tok := args.Get(0); tok != nil {
		return tok.(*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByAccountID(ctx context.Context, accountID uuid.UUID) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockNotificationRepository mocks repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t *testing.T) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if n := args.Get(0); n != nil {
		return n.([]*entity.Notification), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockDeviceRepository mocks repository.DeviceRepository.
type MockDeviceRepository struct {
	mock.Mock
}

func NewMockDeviceRepository(t *testing.T) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDeviceRepository) RegisterDevice(ctx context.Context, device *entity.UserDevice) error {
	return m.Called(ctx, device).Error(0)
}

func (m *MockDeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	if d := args.Get(0); d != nil {
		return d.([]*entity.UserDevice), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDeviceRepository) DeactivateDevice(ctx context.Context, fcmToken string) error {
	return m.Called(ctx, fcmToken).Error(0)
}
