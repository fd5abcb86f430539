package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Str0ng@Pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng@Pass", hashed)

	assert.True(t, CheckPassword(hashed, "Str0ng@Pass"))
	assert.False(t, CheckPassword(hashed, "wrong password"))
	assert.False(t, CheckPassword("not-a-hash", "Str0ng@Pass"))
}
