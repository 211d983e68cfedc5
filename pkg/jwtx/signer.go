package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign access tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// MinSecretLength is the shortest shared secret accepted for HS256.
const MinSecretLength = 32

var ErrWeakSecret = errors.New("jwtx: shared secret too short")

// HS256Signer signs with a process-wide shared secret.
type HS256Signer struct {
	secret []byte
}

func NewSignerHS256(secret string) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{secret: []byte(secret)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
