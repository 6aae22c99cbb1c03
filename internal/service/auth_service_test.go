package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroranet/portal-service/internal/auth"
	"github.com/auroranet/portal-service/internal/config"
	"github.com/auroranet/portal-service/internal/domain"
	"github.com/auroranet/portal-service/internal/events"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

func newAuthService(users *stubUserRepo) *AuthService {
	cfg := config.Config{}
	cfg.Auth.BcryptCost = 4
	cfg.Auth.ResetTokenSecret = "test-secret"
	cfg.Auth.PasswordResetTTLMinutes = 30
	cfg.App.PublicURL = "http://localhost:3000"

	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   users,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)

	users := &stubUserRepo{users: []domain.User{{ID: "user-1", PasswordHash: hash}}}
	svc := newAuthService(users)

	err = svc.ChangePassword(context.Background(), "user-1", "wrong-guess", "new-password")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Invalid credentials", domainErr.Message)
}

func TestChangePasswordUpdatesHash(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)

	users := &stubUserRepo{users: []domain.User{{ID: "user-1", PasswordHash: hash}}}
	svc := newAuthService(users)

	require.NoError(t, svc.ChangePassword(context.Background(), "user-1", "correct-horse", "new-password"))
	assert.NotEqual(t, hash, users.users[0].PasswordHash)
	assert.NoError(t, auth.ComparePassword(users.users[0].PasswordHash, "new-password"))
}

func TestRequestPasswordResetSilentOnUnknownEmail(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})
	assert.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
}

func TestConfirmPasswordResetRejectsGarbageToken(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})

	err := svc.ConfirmPasswordReset(context.Background(), "not-a-token", "new-password")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	users := &stubUserRepo{users: []domain.User{{ID: "user-1", Name: "Alice"}}}
	svc := newAuthService(users)

	empty := "   "
	_, err := svc.UpdateProfile(context.Background(), "user-1", &empty, nil)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Name cannot be empty", domainErr.Message)
}

func TestUpdateProfileLeavesAbsentFieldsUntouched(t *testing.T) {
	users := &stubUserRepo{users: []domain.User{{ID: "user-1", Name: "Alice", Phone: "555-0100"}}}
	svc := newAuthService(users)

	phone := "555-0199"
	user, err := svc.UpdateProfile(context.Background(), "user-1", nil, &phone)
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "555-0199", user.Phone)
}
