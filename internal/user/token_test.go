package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	u := &User{
		ID:       "user-1",
		TenantID: "tenant-1",
		Username: "budi",
		IsAdmin:  true,
	}

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := GenerateJWT(u, "secret")
		require.NoError(t, err)

		claims, err := ParseJWT(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "tenant-1", claims.TenantID)
		assert.Equal(t, "budi", claims.Username)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		token, err := GenerateJWT(u, "secret")
		require.NoError(t, err)

		_, err = ParseJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("EmptySecretRejected", func(t *testing.T) {
		_, err := GenerateJWT(u, "")
		assert.Error(t, err)

		_, err = ParseJWT("whatever", "")
		assert.Error(t, err)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		_, err := ParseJWT("not-a-token", "secret")
		assert.Error(t, err)
	})
}
