package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocart/internal/models"
	"gocart/internal/utils"
	"gocart/internal/validators"
)

const testSecret = "test-secret-key"

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	return NewAuthService(userRepo, testSecret, testLogger(t)), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(context.Background(), &validators.UserRegistrationRequest{
		DisplayName: "Test Shopper",
		Email:       "shopper@example.com",
		Password:    "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCustomer, registered.User.Role)
	assert.NotEmpty(t, registered.Tokens.AccessToken)

	// The stored password is hashed, never the plaintext.
	assert.NotEqual(t, "Sup3r$ecret", registered.User.Password)

	logged, err := service.Login(context.Background(), &validators.UserLoginRequest{
		Email:    "shopper@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)
	assert.NotNil(t, logged.User.LastLoginAt)

	claims, err := utils.ValidateToken(logged.Tokens.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleCustomer), claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(context.Background(), &validators.UserRegistrationRequest{
		DisplayName: "Test Shopper",
		Email:       "shopper@example.com",
		Password:    "Sup3r$ecret",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &validators.UserLoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, models.ErrInvalidPassword)
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Login(context.Background(), &validators.UserLoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	// Unknown accounts and bad passwords are indistinguishable.
	assert.ErrorIs(t, err, models.ErrInvalidPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture(t)

	request := &validators.UserRegistrationRequest{
		DisplayName: "Test Shopper",
		Email:       "shopper@example.com",
		Password:    "Sup3r$ecret",
	}
	_, err := service.Register(context.Background(), request)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), request)
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestChangePassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(context.Background(), &validators.UserRegistrationRequest{
		DisplayName: "Test Shopper",
		Email:       "shopper@example.com",
		Password:    "Sup3r$ecret",
	})
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), registered.User.ID, &validators.PasswordChangeRequest{
		CurrentPassword: "wrong",
		NewPassword:     "N3w$ecret!!",
	})
	assert.ErrorIs(t, err, models.ErrInvalidPassword)

	err = service.ChangePassword(context.Background(), registered.User.ID, &validators.PasswordChangeRequest{
		CurrentPassword: "Sup3r$ecret",
		NewPassword:     "N3w$ecret!!",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &validators.UserLoginRequest{
		Email:    "shopper@example.com",
		Password: "N3w$ecret!!",
	})
	require.NoError(t, err)
}

func TestUpdateProfileDisplayName(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(context.Background(), &validators.UserRegistrationRequest{
		DisplayName: "Test Shopper",
		Email:       "shopper@example.com",
		Password:    "Sup3r$ecret",
	})
	require.NoError(t, err)

	updated, err := service.UpdateProfile(context.Background(), registered.User.ID, &validators.ProfileUpdateRequest{
		DisplayName: "Renamed Shopper",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shopper", updated.DisplayName)

	profile, err := service.GetProfile(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shopper", profile.DisplayName)
}
