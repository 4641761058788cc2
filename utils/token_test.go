package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, time.Hour, 7, "admin@bayka.coffee", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "admin@bayka.coffee", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, time.Hour, 1, "a@b.c", "admin")
	require.NoError(t, err)
	_, err = ValidateToken([]byte("wrong"), token)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, -time.Minute, 1, "a@b.c", "admin")
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	assert.Error(t, err)

	_, err = ValidateToken(secret, "not-a-token")
	assert.Error(t, err)
}
