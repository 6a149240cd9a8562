package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlink_backend/internal/models"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	db, svc := newTestServices(t)

	resp, err := svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "correct-horse",
		PasswordConfirmation: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)

	// Registration creates the profile row in the same transaction.
	var profile models.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", resp.User.ID).Error)

	login, err := svc.Auth.Login(db, &dto.LoginRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestLoginFailures(t *testing.T) {
	db, svc := newTestServices(t)

	_, err := svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Password:             "correct-horse",
		PasswordConfirmation: "correct-horse",
	})
	require.NoError(t, err)

	// Wrong password and unknown user are indistinguishable.
	_, err = svc.Auth.Login(db, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Auth.Login(db, &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	db, svc := newTestServices(t)

	_, err := svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Password:             "correct-horse",
		PasswordConfirmation: "different",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	_, err = svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Password:             "short",
		PasswordConfirmation: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	// No user row survives the failed attempts.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db, svc := newTestServices(t)

	_, err := svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Password:             "correct-horse",
		PasswordConfirmation: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Auth.Register(db, &dto.RegisterRequest{
		Username:             "alice",
		Password:             "another-pass",
		PasswordConfirmation: "another-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}
