// internal/session/token_test.go
package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspectToken(t *testing.T) {
	issued := time.Now().UTC().Truncate(time.Second)
	expires := issued.Add(24 * time.Hour)

	signed := mintToken(t, jwt.RegisteredClaims{
		Subject:   "user:42",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	info, err := InspectToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "user:42", info.Subject)
	assert.Equal(t, issued, info.IssuedAt)
	assert.Equal(t, expires, info.ExpiresAt)
	assert.False(t, info.IsExpired(issued.Add(time.Hour)))
	assert.True(t, info.IsExpired(expires.Add(time.Second)))
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	signed := mintToken(t, jwt.RegisteredClaims{Subject: "user:1"})

	info, err := InspectToken(signed)
	require.NoError(t, err)
	assert.False(t, info.IsExpired(time.Now().Add(100*365*24*time.Hour)))
}

func TestInspectTokenInvalid(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	assert.Error(t, err)
}
