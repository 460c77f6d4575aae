package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "zero uses default", cost: 0, want: bcrypt.DefaultCost},
		{name: "below min is clamped", cost: 1, want: bcrypt.MinCost},
		{name: "above max is clamped", cost: 99, want: bcrypt.MaxCost},
		{name: "valid cost kept", cost: 6, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).Cost)
		})
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("valid password")
	require.NoError(t, err)
	assert.NotEqual(t, "valid password", hash)
	assert.LessOrEqual(t, len(hash), 128)

	ok, err := h.Verify("valid password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("some other password", hash)
	require.NoError(t, err, "mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("admin")
	require.NoError(t, err)
	h2, err := h.Hash("admin")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestBcryptHasher_HashEmpty(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, pw := range []string{"", "   "} {
		hash, err := h.Hash(pw)
		assert.ErrorIs(t, err, ErrEmptyPassword)
		assert.Empty(t, hash)
	}
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{name: "plaintext stored", hash: "some password"},
		{name: "empty hash", hash: ""},
		{name: "truncated hash", hash: "$2a$04$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("some password", tt.hash)
			require.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNewAuthKey(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		k := NewAuthKey()
		require.NotEmpty(t, k)
		assert.LessOrEqual(t, len(k), 255)
		_, dup := seen[k]
		require.False(t, dup, "authkey %q generated twice", k)
		seen[k] = struct{}{}
	}
}
