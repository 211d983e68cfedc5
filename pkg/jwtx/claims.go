package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is how long a login token stays valid.
const DefaultAccessTokenTTL = time.Hour

// Claims are the access token claims. Subject carries the principal's email,
// Kind the collection the principal was found in at login.
type Claims struct {
	jwt.RegisteredClaims

	Kind string `json:"kind"`
}

// NewAccessClaims builds claims valid from now until now+ttl.
func NewAccessClaims(email, kind, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind: kind,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Email is the identity the token was issued for.
func (c Claims) Email() string { return c.Subject }

// Expiry returns exp as a time, or the zero time when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
