package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(7, "Ana", "customer")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "LittleLemon", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(7, "Ana", "customer")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
	_, err = ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestBlacklistedTokenIsRejected(t *testing.T) {
	token, err := GenerateToken(99, "Revoked", "staff")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.NoError(t, err)

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredBlacklistEntryIsDropped(t *testing.T) {
	BlacklistToken("stale-token", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenBlacklisted("stale-token"))

	blacklistMutex.RLock()
	_, kept := blacklistedTokens["stale-token"]
	blacklistMutex.RUnlock()
	assert.False(t, kept)
}
