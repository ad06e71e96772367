package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyHash_KnownVectors(t *testing.T) {
	// Values produced by the original browser client's rolling hash.
	tests := []struct {
		password string
		want     string
	}{
		{"123", "be32"},
		{"456", "c9d5"},
		{"789", "d578"},
		{"", "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LegacyHash(tt.password), "password %q", tt.password)
	}
}

func TestLegacyHash_Deterministic(t *testing.T) {
	for _, p := range []string{"password", "correct horse battery staple", "ünïcødé", "a"} {
		assert.Equal(t, LegacyHash(p), LegacyHash(p))
	}
}

func TestHashPassword_ProducesArgon2id(t *testing.T) {
	hash, err := HashPassword("SecurePassword123!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.False(t, IsLegacyHash(hash))
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_Argon2Roundtrip(t *testing.T) {
	hash, err := HashPassword("SecurePassword123!")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "SecurePassword123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "WrongPassword")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_LegacyFormat(t *testing.T) {
	stored := LegacyHash("123")
	assert.True(t, IsLegacyHash(stored))

	ok, err := VerifyPassword(stored, "123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(stored, "321")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_GarbageHashDoesNotError(t *testing.T) {
	ok, err := VerifyPassword("$argon2id$not-a-real-hash", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}
