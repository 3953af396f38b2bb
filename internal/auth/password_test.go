package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	assert.True(t, h.Verify("pw1", hash))
	assert.False(t, h.Verify("pw2", hash))
	assert.False(t, h.Verify("pw1", "not-a-bcrypt-hash"))
}

func TestHasherSaltsEveryHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("pw1")
	require.NoError(t, err)
	b, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewHasherClampsLowCost(t *testing.T) {
	h := NewHasher(0)
	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
