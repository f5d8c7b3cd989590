// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/contacts-api/internal/config"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-with-enough-bytes-000",
		AccessTokenExpire: time.Hour,
		Issuer:            "contacts-api",
		Audience:          "contacts-api",
	}
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	return m
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestTokenManager(t)

	tok, err := m.CreateAccessToken(TokenClaims{UserID: "u-1", Email: "a@b.com"})
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokensAreUnique(t *testing.T) {
	m := newTestTokenManager(t)

	a, err := m.CreateAccessToken(TokenClaims{UserID: "u-1"})
	require.NoError(t, err)
	b, err := m.CreateAccessToken(TokenClaims{UserID: "u-1"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "another-secret-with-enough-bytes-1"
	foreign, err := NewTokenManager(other)
	require.NoError(t, err)

	tok, err := foreign.CreateAccessToken(TokenClaims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = newTestTokenManager(t).ParseAccessToken(tok)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestParseRejectsExpired(t *testing.T) {
	m := newTestTokenManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := m.CreateAccessToken(TokenClaims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := newTestTokenManager(t).ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	_, err := NewTokenManager(cfg)
	assert.Error(t, err)
}
