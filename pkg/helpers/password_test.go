package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	// low cost to keep the test fast
	hash, err := HashPassword("pass1234", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)

	assert.True(t, CompareHashAndPassword(hash, "pass1234"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-password"))
}

func TestHashPasswordUnique(t *testing.T) {
	// bcrypt salts, so two hashes of the same input differ
	h1, err := HashPassword("pass1234", 4)
	require.NoError(t, err)
	h2, err := HashPassword("pass1234", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestNewResetSecret(t *testing.T) {
	plain, digest, err := NewResetSecret()
	require.NoError(t, err)
	assert.Len(t, plain, 64)  // 32 bytes hex
	assert.Len(t, digest, 64) // sha256 hex
	assert.NotEqual(t, plain, digest)
	assert.Equal(t, digest, HashResetSecret(plain))

	plain2, _, err := NewResetSecret()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}
