package auth

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) (*BcryptHasher, *recLogger) {
	t.Helper()
	log := newRecLogger()
	h, err := NewBcryptHasher(bcrypt.MinCost, log)
	require.NoError(t, err)
	return h, log
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	for _, cost := range []int{0, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost, nil)
		assert.ErrorIs(t, err, common.ErrInvalidConfig, "cost %d", cost)
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h, _ := newTestHasher(t)

	for _, p := range []string{"password123", "ünïcødé-pässwörd", "x", strings.Repeat("a", MaxPasswordBytes)} {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, h.Verify(p, hash), "password %q", p)
	}
}

func TestBcryptHasher_SaltDiffersPerCall(t *testing.T) {
	h, _ := newTestHasher(t)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h, log := newTestHasher(t)

	hash, err := h.Hash("correct-horse")
	require.NoError(t, err)

	assert.False(t, h.Verify("battery-staple", hash))
	assert.False(t, h.Verify("", hash))
	assert.Empty(t, log.levels())
}

func TestBcryptHasher_InvalidInput(t *testing.T) {
	h, _ := newTestHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h, log := newTestHasher(t)

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$10$short"} {
		assert.False(t, h.Verify("password123", stored), "hash %q", stored)
	}
	assert.Equal(t, []string{"error", "error", "error"}, log.levels())
}
