package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/domain/service"
	"unishare/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	hasher       service.PasswordHasher
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	tokenService service.TokenService,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       logger,
	}
}

// Register creates an account with its profile and logs the user in. The
// account, profile, and joining badge land in one transaction.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("failed to hash password", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed
	}

	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	var profile *entity.Profile

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAccountRepository().Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrAccountAlreadyExists
			}

			return errors.Wrap(err, "failed to create account")
		}

		profileRepo := repoFactory.NewProfileRepository()
		fresh := &entity.Profile{
			UserID:      account.ID,
			DisplayName: input.Name,
			Role:        entity.RoleStudent,
			JoinedAt:    time.Now(),
		}
		if err := profileRepo.CreateIfAbsent(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}
		profile = fresh

		badgeRepo := repoFactory.NewBadgeRepository()
		joinBadges, err := badgeRepo.ListByTypes(ctx, []entity.BadgeType{entity.BadgeTypeJoin})
		if err != nil {
			return errors.Wrap(err, "failed to list joining badges")
		}
		for _, badge := range joinBadges {
			if _, err := badgeRepo.Award(ctx, account.ID, badge.ID); err != nil {
				return errors.Wrapf(err, "failed to award badge %s", badge.Name)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("account registered", "accountID", account.ID)

	return srv.issueSession(ctx, account, profile)
}

// Login verifies credentials and issues a token pair.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	var (
		account *entity.Account
		profile *entity.Profile
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewAccountRepository().FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find account")
		}
		if !srv.hasher.Check(input.Password, found.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}
		account = found

		existing, err := repoFactory.NewProfileRepository().FindByUserID(ctx, found.ID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to find profile")
		}
		profile = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	return srv.issueSession(ctx, account, profile)
}

// Refresh exchanges a valid refresh token for a new token pair. The stored
// token is revoked and replaced, so a captured token works at most once.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	tokenHash := hashToken(refreshToken)

	var (
		account *entity.Account
		profile *entity.Profile
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewRefreshTokenRepository()

		stored, err := tokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}
		if !stored.Valid(time.Now()) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		if err := tokenRepo.RevokeRefreshToken(ctx, stored.ID); err != nil {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		found, err := repoFactory.NewAccountRepository().FindByID(ctx, stored.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find account")
		}
		account = found

		existing, err := repoFactory.NewProfileRepository().FindByUserID(ctx, found.ID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to find profile")
		}
		profile = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	return srv.issueSession(ctx, account, profile)
}

// Logout revokes the session behind the given refresh token. An unknown
// token is a no-op so logout never fails for an already-cleared session.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := hashToken(refreshToken)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewRefreshTokenRepository()

		stored, err := tokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if err := tokenRepo.RevokeRefreshToken(ctx, stored.ID); err != nil {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		return nil
	})
}

// issueSession generates a token pair and stores the refresh token's hash.
func (srv *authService) issueSession(ctx context.Context, account *entity.Account, profile *entity.Profile) (*usecase.AuthOutput, error) {
	roles := []string{string(entity.RoleStudent)}
	if profile != nil {
		roles = []string{string(profile.Role)}
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID, roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	stored := &entity.RefreshToken{
		AccountID: account.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewRefreshTokenRepository().CreateRefreshToken(ctx, stored); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

// hashToken derives the storage key for a refresh token. Only the digest
// is persisted; a database leak exposes no usable tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
