// internal/session/token.go
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes the client-visible claims of an access token. The
// client never verifies the signature; the server is the authority. This
// is only used to know when a cached token is already expired.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken parses a JWT without verifying its signature and returns
// the registered claims the client cares about.
func InspectToken(tokenString string) (*TokenInfo, error) {
	parser := jwt.NewParser()

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// IsExpired reports whether the token's expiry has passed. Tokens without
// an exp claim never expire from the client's point of view.
func (t *TokenInfo) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
