package impl

import (
	"context"
	"testing"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"
	mockService "unishare/internal/mocks/service"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	tokenService *mockService.MockTokenService
	hasher       *mockService.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	tokenService := mockService.NewMockTokenService(t)
	hasher := mockService.NewMockPasswordHasher(t)
	service := NewAuthService(txManager, tokenService, hasher, testLogger())

	return authServiceFixtures{
		service:      service,
		txManager:    txManager,
		tokenService: tokenService,
		hasher:       hasher,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:     "Ada Student",
		Email:    "ada@university.edu",
		Password: "correct-horse",
	}
	joinBadge := &entity.Badge{ID: uuid.New(), Name: "Newcomer", Type: entity.BadgeTypeJoin}

	fx.hasher.On("Hash", "correct-horse").Return("$2a$10$hash", nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	badgeRepo := mockRepo.NewMockBadgeRepository(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewBadgeRepository").Return(badgeRepo)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)

	accountRepo.On("Create", ctx, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Email == "ada@university.edu" && a.PasswordHash == "$2a$10$hash"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Account).ID = uuid.New()
	}).Return(nil)
	profileRepo.On("CreateIfAbsent", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.DisplayName == "Ada Student" && p.Role == entity.RoleStudent
	})).Return(nil)
	badgeRepo.On("ListByTypes", ctx, []entity.BadgeType{entity.BadgeTypeJoin}).Return([]*entity.Badge{joinBadge}, nil)
	badgeRepo.On("Award", ctx, mock.AnythingOfType("uuid.UUID"), joinBadge.ID).Return(true, nil)
	tokenRepo.On("CreateRefreshToken", ctx, mock.MatchedBy(func(rt *entity.RefreshToken) bool {
		return rt.TokenHash != "" && rt.TokenHash != "refresh-token"
	})).Return(nil)
	runTx(fx.txManager, factory)

	fx.tokenService.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), []string{"student"}).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	require.NotNil(t, out.Profile)
	assert.Equal(t, "Ada Student", out.Profile.DisplayName)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{Name: "Dup", Email: "taken@university.edu", Password: "pw"}

	fx.hasher.On("Hash", "pw").Return("$2a$10$hash", nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	accountRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)
	runTx(fx.txManager, factory)

	out, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
	assert.Nil(t, out)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "ada@university.edu", PasswordHash: "$2a$10$hash"}

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	accountRepo.On("FindByEmail", ctx, "ada@university.edu").Return(account, nil)
	runTx(fx.txManager, factory)

	fx.hasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ada@university.edu", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	accountRepo.On("FindByEmail", ctx, "nobody@university.edu").Return(nil, repository.ErrAccountNotFound)
	runTx(fx.txManager, factory)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@university.edu", Password: "pw"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "ada@university.edu", PasswordHash: "$2a$10$hash"}
	profile := &entity.Profile{UserID: account.ID, DisplayName: "Ada Student", Role: entity.RoleModerator}

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)

	accountRepo.On("FindByEmail", ctx, "ada@university.edu").Return(account, nil)
	profileRepo.On("FindByUserID", ctx, account.ID).Return(profile, nil)
	tokenRepo.On("CreateRefreshToken", ctx, mock.Anything).Return(nil)
	runTx(fx.txManager, factory)

	fx.hasher.On("Check", "correct-horse", "$2a$10$hash").Return(true)
	fx.tokenService.On("GenerateTokens", account.ID, []string{"moderator"}).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ada@university.edu", Password: "correct-horse"})

	require.NoError(t, err)
	assert.Equal(t, profile, out.Profile)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "ada@university.edu"}
	stored := &entity.RefreshToken{
		ID:        uuid.New(),
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewAccountRepository").Return(accountRepo)
	factory.On("NewProfileRepository").Return(profileRepo)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)

	tokenRepo.On("FindRefreshTokenByHash", ctx, mock.AnythingOfType("string")).Return(stored, nil)
	tokenRepo.On("RevokeRefreshToken", ctx, stored.ID).Return(nil)
	accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
	profileRepo.On("FindByUserID", ctx, account.ID).Return(nil, repository.ErrProfileNotFound)
	tokenRepo.On("CreateRefreshToken", ctx, mock.Anything).Return(nil)
	runTx(fx.txManager, factory)

	fx.tokenService.On("GenerateTokens", account.ID, []string{"student"}).
		Return("new-access", "new-refresh", nil)
	fx.tokenService.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)

	out, err := fx.service.Refresh(ctx, "old-refresh-token")

	require.NoError(t, err)
	assert.Equal(t, "new-refresh", out.RefreshToken)
	tokenRepo.AssertCalled(t, "RevokeRefreshToken", ctx, stored.ID)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	stored := &entity.RefreshToken{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)
	tokenRepo.On("FindRefreshTokenByHash", ctx, mock.AnythingOfType("string")).Return(stored, nil)
	runTx(fx.txManager, factory)

	out, err := fx.service.Refresh(ctx, "stale-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	assert.Nil(t, out)
	tokenRepo.AssertNotCalled(t, "RevokeRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RevokedToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	stored := &entity.RefreshToken{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
		IsRevoked: true,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)
	tokenRepo.On("FindRefreshTokenByHash", ctx, mock.AnythingOfType("string")).Return(stored, nil)
	runTx(fx.txManager, factory)

	out, err := fx.service.Refresh(ctx, "revoked-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	assert.Nil(t, out)
}

func TestAuthService_Logout_UnknownTokenIsNoop(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)
	tokenRepo.On("FindRefreshTokenByHash", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrRefreshTokenNotFound)
	runTx(fx.txManager, factory)

	err := fx.service.Logout(ctx, "already-gone")

	require.NoError(t, err)
	tokenRepo.AssertNotCalled(t, "RevokeRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	stored := &entity.RefreshToken{ID: uuid.New(), AccountID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	factory := mockRepo.NewMockRepositoryFactory(t)
	tokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.On("NewRefreshTokenRepository").Return(tokenRepo)
	tokenRepo.On("FindRefreshTokenByHash", ctx, mock.AnythingOfType("string")).Return(stored, nil)
	tokenRepo.On("RevokeRefreshToken", ctx, stored.ID).Return(nil)
	runTx(fx.txManager, factory)

	err := fx.service.Logout(ctx, "active-token")

	require.NoError(t, err)
}
