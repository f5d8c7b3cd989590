// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong12", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafeWithoutHash(t *testing.T) {
	ok, err := VerifyPasswordTimingSafe("secret1", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateVerificationToken(t *testing.T) {
	a, err := GenerateVerificationToken()
	require.NoError(t, err)
	b, err := GenerateVerificationToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestHashPasswordTooLong(t *testing.T) {
	long := strings.Repeat("é", 40)
	require.Greater(t, len(long), MaxPasswordBytes)

	_, err := HashPassword(long)
	require.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, KindValidation, Classify(err).Kind)

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	ok, err := VerifyPassword(long, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
