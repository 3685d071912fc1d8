package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("64f0c2b1a2b3c4d5e6f70809")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2b1a2b3c4d5e6f70809", claims.UserID)

	// Expiry should land seven days out.
	expected := time.Now().Add(TokenLifetime).Unix()
	assert.InDelta(t, expected, claims.ExpiresAt, 5)
}

func TestParseJWTWrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT("64f0c2b1a2b3c4d5e6f70809")
	require.NoError(t, err)

	JwtKey = []byte("another-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
