package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notable-notes/notable/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	tokenString, err := GenerateToken(userID, "user@example.com", false, testSecret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.False(t, claims.IsStaff)
}

func TestValidateTokenStaffClaim(t *testing.T) {
	tokenString, err := GenerateToken(uuid.New(), "admin@example.com", true, testSecret, time.Hour)
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString, testSecret)
	assert.NoError(t, err)
	assert.True(t, claims.IsStaff)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(uuid.New(), "user@example.com", false, testSecret, time.Hour)
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString, []byte("other-secret"))
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateTokenExpired(t *testing.T) {
	tokenString, err := GenerateToken(uuid.New(), "user@example.com", false, testSecret, -time.Minute)
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateTokenGarbage(t *testing.T) {
	claims, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestExtractToken(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	c := testutils.GetTestGinContext(httptest.NewRecorder(), req)

	token, err := ExtractToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	c := testutils.GetTestGinContext(httptest.NewRecorder(), req)

	_, err := ExtractToken(c)
	assert.ErrorIs(t, err, ErrAuthHeaderMissing)
}

func TestExtractTokenBadFormat(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abc123")
	c := testutils.GetTestGinContext(httptest.NewRecorder(), req)

	_, err := ExtractToken(c)
	assert.ErrorIs(t, err, ErrInvalidAuthFormat)
}
