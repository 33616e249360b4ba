package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)

	assert.True(t, CheckPasswordHash("Secret123", hash))
}

func TestCheckPasswordHash_RejectsAnyAlteredByte(t *testing.T) {
	const password = "Secret123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	for i := 0; i < len(password); i++ {
		altered := []byte(password)
		altered[i] ^= 0x01
		assert.False(t, CheckPasswordHash(string(altered), hash), "altered byte %d accepted", i)
	}

	assert.False(t, CheckPasswordHash(password+"x", hash))
	assert.False(t, CheckPasswordHash(password[:len(password)-1], hash))
}

func TestCheckPasswordHash_FailsClosedOnMissingHash(t *testing.T) {
	// An absent stored hash must read as a mismatch, not as an error.
	assert.False(t, CheckPasswordHash("Secret123", ""))
	assert.False(t, CheckPasswordHash("", ""))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("Secret123")
	require.NoError(t, err)
	h2, err := HashPassword("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password should differ")
	assert.True(t, CheckPasswordHash("Secret123", h1))
	assert.True(t, CheckPasswordHash("Secret123", h2))
}
