package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "pathfinder"
)

// whole second so NumericDate truncation does not move the boundary
var issuedAt = time.Unix(1_700_000_000, 0).UTC()

func newPair(t *testing.T, now *time.Time) (*jwtx.Issuer, *jwtx.HS256Verifier) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	clock := func() time.Time { return *now }
	verifier.Now = clock

	return &jwtx.Issuer{Signer: signer, Issuer: testIssuer, TTL: time.Hour, Now: clock}, verifier
}

func TestIssueAndVerify(t *testing.T) {
	now := issuedAt
	issuer, verifier := newPair(t, &now)

	token, claims, err := issuer.Issue("test@test.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, issuedAt.Add(time.Hour), claims.Expiry())

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "test@test.com", got.Email())
	require.Equal(t, "user", got.Kind)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	now := issuedAt
	issuer, verifier := newPair(t, &now)

	token, _, err := issuer.Issue("test@test.com", "user")
	require.NoError(t, err)

	t.Run("one second before expiry", func(t *testing.T) {
		now = issuedAt.Add(time.Hour - time.Second)
		_, err := verifier.Verify(token)
		require.NoError(t, err)
	})

	t.Run("at the expiry instant", func(t *testing.T) {
		now = issuedAt.Add(time.Hour)
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("after expiry", func(t *testing.T) {
		now = issuedAt.Add(2 * time.Hour)
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("before issue", func(t *testing.T) {
		now = issuedAt.Add(-time.Minute)
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})
}

func TestVerify_Rejections(t *testing.T) {
	now := issuedAt
	issuer, verifier := newPair(t, &now)

	token, claims, err := issuer.Issue("test@test.com", "admin")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewVerifierHS256(strings.Repeat("x", 32), testIssuer)
		require.NoError(t, err)
		other.Now = func() time.Time { return now }

		_, err = other.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		forged := parts[0] + "." + parts[1] + "x." + parts[2]

		_, err := verifier.Verify(forged)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		strict, err := jwtx.NewVerifierHS256(testSecret, "someone-else")
		require.NoError(t, err)
		strict.Now = func() time.Time { return now }

		_, err = strict.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("unsigned token", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(none)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := claims
		c.ExpiresAt = nil
		signer, err := jwtx.NewSignerHS256(testSecret)
		require.NoError(t, err)
		raw, err := signer.Sign(c)
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestWeakSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256("short")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewVerifierHS256("short", testIssuer)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
