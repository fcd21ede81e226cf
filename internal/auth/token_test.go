package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-characters-long!!"

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	tokenString, err := tm.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tm.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "token must carry a JTI for revocation")
}

func TestValidateToken_UniqueJTIPerToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	first, err := tm.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)
	second, err := tm.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)

	firstClaims, err := tm.ValidateToken(first)
	require.NoError(t, err)
	secondClaims, err := tm.ValidateToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, -1*time.Minute)

	tokenString, err := tm.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = tm.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	other := NewTokenManager("a-completely-different-secret!!!", 15*time.Minute)

	tokenString, err := tm.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	_, err := tm.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
