// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"unishare/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the generated tokens after a successful login or refresh.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	Profile      *entity.Profile
}

// AuthUsecase defines the interface for account registration and session management.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates an account with its profile and logs the user in.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a new token pair,
	// rotating the stored token.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session behind the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
