package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Minimum cost keeps the test fast.
	hash, err := HashPassword("Password123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	assert.True(t, VerifyPassword(hash, "Password123"))
	assert.False(t, VerifyPassword(hash, "wrongpassword"))
	assert.False(t, VerifyPassword("", "Password123"))
}
