package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/utils"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("pw1", 4) // min cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	assert.True(t, utils.VerifyPassword(hash, "pw1"))
	assert.False(t, utils.VerifyPassword(hash, "wrong"))
	assert.False(t, utils.VerifyPassword(hash, ""))
}

func TestVerifyPasswordBadHash(t *testing.T) {
	assert.False(t, utils.VerifyPassword("not-a-bcrypt-hash", "pw1"))
}
