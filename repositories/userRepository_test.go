package repositories

import (
	"PharmaTrack/models"
	"PharmaTrack/utils"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCacheRoundTripKeepsPasswordHash(t *testing.T) {
	hashed, err := utils.HashPassword("Str0ng@Pass")
	require.NoError(t, err)

	user := models.User{
		ID:       7,
		Name:     "Ana Lima",
		Email:    "ana@example.com",
		Password: hashed,
		RoleID:   2,
		Role:     models.Role{ID: 2, Name: "Pharmacist"},
	}

	encoded, err := encodeUserForCache(user)
	require.NoError(t, err)

	decoded, err := decodeUserFromCache(encoded)
	require.NoError(t, err)

	// A login served from the cache must still pass the password check
	assert.Equal(t, hashed, decoded.Password)
	assert.True(t, utils.CheckPassword(decoded.Password, "Str0ng@Pass"))

	assert.Equal(t, user.Email, decoded.Email)
	assert.Equal(t, user.Role.Name, decoded.Role.Name)
}

func TestUserAPIEncodingHidesPassword(t *testing.T) {
	user := models.User{Email: "ana@example.com", Password: "hash"}

	apiJSON, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(apiJSON), "hash")

	cacheJSON, err := encodeUserForCache(user)
	require.NoError(t, err)
	assert.Contains(t, string(cacheJSON), "hash")
}
