package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, sessionID, expiry, err := svc.GenerateToken("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, sessionID)
	assert.True(t, expiry.After(time.Now()))

	username, gotSessionID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, sessionID, gotSessionID)
}

func TestTokenService_UniqueSessionIDs(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, first, _, err := svc.GenerateToken("alice")
	require.NoError(t, err)
	_, second, _, err := svc.GenerateToken("alice")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_ValidateRejectsBadInput(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := svc.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		token, _, _, err := other.GenerateToken("alice")
		require.NoError(t, err)

		_, _, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute)
		token, _, _, err := expired.GenerateToken("alice")
		require.NoError(t, err)

		_, _, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
