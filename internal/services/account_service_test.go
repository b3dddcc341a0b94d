package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/database/testutil"
	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
)

func newAccountService(t *testing.T) (*AccountService, *auth.JWTService) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "nexttalent"})
	require.NoError(t, err)

	svc, err := NewAccountService(db, jwt)
	require.NoError(t, err)
	return svc, jwt
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{
		Email:    "Alice@Example.com",
		Password: "supersecret",
		Role:     models.RoleUser,
		FullName: "Alice Tan",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", account.Email)
	require.Equal(t, models.RoleUser, account.Role)

	profiles, err := NewProfileService(svc.db)
	require.NoError(t, err)
	profile, err := profiles.GetUserProfile(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Tan", profile.FullName)
}

func TestRegisterEmployerRequiresCompanyName(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "acme@example.com",
		Password: "supersecret",
		Role:     models.RoleEmployer,
	})
	require.Error(t, err)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "evil@example.com",
		Password: "supersecret",
		Role:     models.RoleAdmin,
		FullName: "Evil",
	})
	require.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	input := RegisterInput{
		Email:    "alice@example.com",
		Password: "supersecret",
		Role:     models.RoleUser,
		FullName: "Alice Tan",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)
}

func TestAuthenticateIssuesRoleToken(t *testing.T) {
	svc, jwt := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:       "acme@example.com",
		Password:    "supersecret",
		Role:        models.RoleEmployer,
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	result, err := svc.Authenticate(ctx, LoginInput{Email: "acme@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotNil(t, result.Account.LastLoginAt)
	require.WithinDuration(t, time.Now(), *result.Account.LastLoginAt, time.Minute)

	claims, err := jwt.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.Account.ID, claims.UserID)
	require.Equal(t, models.RoleEmployer, claims.Role)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@example.com",
		Password: "supersecret",
		Role:     models.RoleUser,
		FullName: "Alice Tan",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
