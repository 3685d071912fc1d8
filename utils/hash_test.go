package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hashed)

	assert.True(t, ComparePassword("hunter22", hashed))
	assert.False(t, ComparePassword("hunter23", hashed))
}

func TestComparePasswordGarbageHash(t *testing.T) {
	// A malformed stored hash is a mismatch, never a panic.
	assert.False(t, ComparePassword("anything", "not-a-bcrypt-hash"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
