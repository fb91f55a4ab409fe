package auth

import (
	"testing"
	"time"

	"unishare/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	roles := []string{"student"}

	accessToken, refreshToken, err := svc.GenerateTokens(userID, roles)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	// Refresh tokens are signed with a different secret and typed "refresh",
	// so they must never pass access validation.
	_, refreshToken, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshToken)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, svc.GetRefreshTokenDuration())
}
