package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Parola123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Parola123!", hash)

	assert.True(t, CheckPassword(hash, "Parola123!"))
	assert.False(t, CheckPassword(hash, "parola123!"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
