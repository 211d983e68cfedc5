package jwtx

import (
	"fmt"
	"time"
)

// Issuer mints access tokens for authenticated principals.
type Issuer struct {
	Signer Signer
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Issue returns a signed token for email, plus the claims it carries.
func (i *Issuer) Issue(email, kind string) (string, Claims, error) {
	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	ttl := i.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	claims := NewAccessClaims(email, kind, i.Issuer, ttl, now().UTC())
	token, err := i.Signer.Sign(claims)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims, nil
}
