// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"io"
	"testing"
	"time"

	"unishare/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishBadgeEvent(ctx context.Context, event *service.BadgeEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockPushService mocks service.PushService.
type MockPushService struct {
	mock.Mock
}

func NewMockPushService(t *testing.T) *MockPushService {
	m := &MockPushService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPushService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)

	var invalid []string
	if v := args.Get(2); v != nil {
		invalid = v.([]string)
	}

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

func (m *MockPushService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateVoucherQR(purchaseID uuid.UUID) ([]byte, error) {
	args := m.Called(purchaseID)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQRCodeService) ParseVoucherQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c := args.Get(0); c != nil {
		return c.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockFileStore mocks service.FileStore.
type MockFileStore struct {
	mock.Mock
}

func NewMockFileStore(t *testing.T) *MockFileStore {
	m := &MockFileStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFileStore) Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	args := m.Called(ctx, key, contentType, r)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockFileStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}
