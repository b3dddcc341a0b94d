package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexttalent/nexttalent/internal/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "nexttalent"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("account-1", models.RoleEmployer)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "account-1", claims.UserID)
	require.Equal(t, models.RoleEmployer, claims.Role)
	require.Equal(t, "nexttalent", claims.Issuer)
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	issuer, err := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Minute,
		Clock:          func() time.Time { return issued },
	})
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken("account-1", models.RoleUser)
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = validator.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("account-1", models.RoleUser)
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "other-secret"})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestMissingRoleRejected(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = svc.GenerateAccessToken("account-1", "")
	require.Error(t, err)
}
