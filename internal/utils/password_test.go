package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	// The stored value is never the plaintext
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	// bcrypt salts each hash, so equal inputs never collide
	assert.NotEqual(t, first, second)
}

func TestGenerateRandomPassword(t *testing.T) {
	password, err := GenerateRandomPassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	// Every character class is represented
	assert.True(t, strings.ContainsAny(password, lowercaseChars), "missing lowercase in %q", password)
	assert.True(t, strings.ContainsAny(password, uppercaseChars), "missing uppercase in %q", password)
	assert.True(t, strings.ContainsAny(password, digitChars), "missing digit in %q", password)
	assert.True(t, strings.ContainsAny(password, specialChars), "missing special character in %q", password)
}

func TestGenerateRandomPasswordMinimumLength(t *testing.T) {
	// Short requests are raised to the 12 character floor
	password, err := GenerateRandomPassword(4)
	require.NoError(t, err)
	assert.Len(t, password, 12)
}

func TestGenerateRandomPasswordLonger(t *testing.T) {
	password, err := GenerateRandomPassword(20)
	require.NoError(t, err)
	assert.Len(t, password, 20)
}
