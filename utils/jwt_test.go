package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := GenerateToken(secret, 42, "Ann", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := GenerateToken(secret, 1, "Ann", -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(secret, tok)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken([]byte("right-secret"), 1, "Ann", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("wrong-secret"), tok)
	assert.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken([]byte("k"), "not.a.jwt")
	assert.Error(t, err)
}
