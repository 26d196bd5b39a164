package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, h.Verify("password123", hash))
	assert.False(t, h.Verify("wrongpassword", hash))
}

func TestHasherSaltsEveryHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasherRejectsEmptyPassword(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, PasswordCost, NewHasher(0).cost)
	assert.Equal(t, PasswordCost, NewHasher(bcrypt.MaxCost+1).cost)
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	assert.False(t, NewHasher(bcrypt.MinCost).Verify("password123", "not-a-bcrypt-hash"))
}
