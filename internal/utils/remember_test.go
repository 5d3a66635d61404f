package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberTokenRoundTrip(t *testing.T) {
	tok, err := NewRememberToken("secret", "user@email.com", 30)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, err := ParseRememberToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user@email.com", email)
}

func TestRememberTokenWrongSecret(t *testing.T) {
	tok, err := NewRememberToken("secret", "user@email.com", 30)
	require.NoError(t, err)

	_, err = ParseRememberToken("other-secret", tok)
	assert.Error(t, err)
}

func TestRememberTokenExpired(t *testing.T) {
	// Negative TTL puts the expiry in the past.
	tok, err := NewRememberToken("secret", "user@email.com", -1)
	require.NoError(t, err)

	_, err = ParseRememberToken("secret", tok)
	assert.Error(t, err)
}

func TestRememberTokenGarbage(t *testing.T) {
	_, err := ParseRememberToken("secret", "not-a-token")
	assert.Error(t, err)
}
