package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora_backend/middleware"
)

// parsedTestToken signs and re-parses a token so Raw is populated, the same
// shape the JWT middleware stores in the request context.
func parsedTestToken(t *testing.T, secret string) *jwt.Token {
	t.Helper()

	claims := &middleware.JwtCustomClaims{
		UserID:   "64f1c2d3e4a5b6c7d8e9f0a1",
		Email:    "landlord@rentora.test",
		UserType: "landlord",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(signed, &middleware.JwtCustomClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	return parsed
}

func TestLogoutBlacklistsPresentedToken(t *testing.T) {
	token := parsedTestToken(t, "logout-test-secret")
	require.False(t, middleware.IsTokenBlacklisted(token.Raw))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", token)

	ac := NewAuthController(nil)
	require.NoError(t, ac.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, middleware.IsTokenBlacklisted(token.Raw))
}

func TestLogoutWithoutTokenIsUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ac := NewAuthController(nil)
	require.NoError(t, ac.Logout(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
