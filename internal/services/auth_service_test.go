package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestalba/internal/middleware"
	"gestalba/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	hash, err := auth.HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, auth.ComparePassword("supersecret", hash))
	assert.False(t, auth.ComparePassword("wrong", hash))
}

func TestGenerateTokenCarriesClaims(t *testing.T) {
	auth := NewAuthService("test-secret")

	token, err := auth.GenerateToken(&models.User{ID: 42, Email: "ana@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	auth := NewAuthService("test-secret")

	token, err := auth.GenerateToken(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &middleware.Claims{}, func(*jwt.Token) (any, error) {
		return []byte("another-secret"), nil
	})
	assert.Error(t, err)
}
