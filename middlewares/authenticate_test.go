package middlewares

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "buyer@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := parseIdentity(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "buyer@example.com", identity.Email)
	assert.True(t, identity.IsAdmin())
}

func TestParseIdentityLegacyUserIDClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-2",
		"email":   "other@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	identity, err := parseIdentity(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-2", identity.ID)
	assert.False(t, identity.IsAdmin())
}

func TestParseIdentityRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "wrong-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := parseIdentity(tokenString)
	assert.Error(t, err)
}

func TestParseIdentityRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := parseIdentity(tokenString)
	assert.Error(t, err)
}

func TestParseIdentityRequiresSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"email": "nobody@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := parseIdentity(tokenString)
	assert.Error(t, err)
}
