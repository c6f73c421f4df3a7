package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistTokenRoundTrip(t *testing.T) {
	assert.False(t, IsTokenBlacklisted("round-trip-token"))

	BlacklistToken("round-trip-token", time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted("round-trip-token"))
	assert.False(t, IsTokenBlacklisted("some-other-token"))
}

func TestPurgeExpiredTokens(t *testing.T) {
	now := time.Now()
	BlacklistToken("expired-token", now.Add(-time.Minute))
	BlacklistToken("live-token", now.Add(time.Hour))

	purgeExpiredTokens(now)

	assert.False(t, IsTokenBlacklisted("expired-token"))
	assert.True(t, IsTokenBlacklisted("live-token"))
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			BlacklistToken("concurrent-token", time.Now().Add(time.Hour))
		}()
		go func() {
			defer wg.Done()
			IsTokenBlacklisted("concurrent-token")
		}()
		go func() {
			defer wg.Done()
			purgeExpiredTokens(time.Now())
		}()
	}
	wg.Wait()

	assert.True(t, IsTokenBlacklisted("concurrent-token"))
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateJWT("64f1c2d3e4a5b6c7d8e9f0a1", "a@b.test", "landlord")
	require.Error(t, err)
}

func TestGenerateJWTProducesVerifiableClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, refreshString, err := GenerateJWT("64f1c2d3e4a5b6c7d8e9f0a1", "a@b.test", "landlord")
	require.NoError(t, err)
	require.NotEmpty(t, refreshString)

	parsed, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(*JwtCustomClaims)
	assert.Equal(t, "64f1c2d3e4a5b6c7d8e9f0a1", claims.UserID)
	assert.Equal(t, "landlord", claims.UserType)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}
