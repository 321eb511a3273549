package services

import (
	"testing"

	"notable-notes/notable/testutils"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	authService := NewAuthService("test-secret", 1)
	userService := NewUserService(authService)

	user, err := userService.Register(db, "User@Example.com", "longpassword", "")
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "user", user.DisplayName)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "longpassword", user.PasswordHash)

	// Duplicate registration is rejected.
	_, err = userService.Register(db, "user@example.com", "longpassword", "")
	assert.ErrorIs(t, err, ErrResourceExists)

	// Weak credentials are rejected.
	_, err = userService.Register(db, "second@example.com", "short", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = userService.Register(db, "not-an-email", "longpassword", "")
	assert.ErrorIs(t, err, ErrValidation)

	tokenString, err := authService.Login(db, "user@example.com", "longpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.False(t, claims.IsStaff)

	_, err = authService.Login(db, "user@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = authService.Login(db, "nobody@example.com", "longpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	authService := NewAuthService("test-secret", 1)
	userService := NewUserService(authService)

	_, err := userService.Register(db, "user@example.com", "longpassword", "Someone")
	assert.NoError(t, err)

	tokenString, err := authService.Login(db, "user@example.com", "longpassword")
	assert.NoError(t, err)

	otherService := NewAuthService("different-secret", 1)
	_, err = otherService.ValidateToken(tokenString)
	assert.Error(t, err)
}
