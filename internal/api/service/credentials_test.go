package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	u, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "fish", u.PasswordHash)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := e.creds.Login(ctx, domain.TierUser, "test@test.com", "fish", "")
		require.NoError(t, err)
		require.Equal(t, domain.KindUser, res.Principal.Kind)

		claims, err := e.verifier.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, "test@test.com", claims.Email())
		require.Equal(t, "user", claims.Kind)
		require.True(t, claims.Expiry().Equal(e.clock.Now().Add(time.Hour)))
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierUser, "TEST@test.com", "fish", "")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierUser, "test@test.com", "chips", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierUser, "nobody@test.com", "fish", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("users cannot log in as customers", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierCustomer, "test@test.com", "fish", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("token expires after an hour", func(t *testing.T) {
		res, err := e.creds.Login(ctx, domain.TierUser, "test@test.com", "fish", "")
		require.NoError(t, err)

		start := e.clock.Now()
		t.Cleanup(func() { e.clock.Set(start) })

		e.clock.Advance(time.Hour - time.Second)
		_, err = e.verifier.Verify(res.Token)
		require.NoError(t, err)

		e.clock.Advance(time.Second)
		_, err = e.verifier.Verify(res.Token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)

	_, err = e.creds.RegisterUser(ctx, service.RegisterInput{Username: "other", Email: "Test@Test.com", Password: "fish"})
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = e.creds.RegisterUser(ctx, service.RegisterInput{Username: "test", Email: "other@test.com", Password: "fish"})
	require.ErrorIs(t, err, service.ErrConflict)

	// Collections are independent.
	p, err := e.creds.Register(ctx, domain.KindCustomer, service.RegisterInput{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)
	require.Equal(t, domain.KindCustomer, p.Kind)

	_, err = e.creds.Register(ctx, domain.KindAdmin, service.RegisterInput{Email: "a@test.com", Password: "fish"})
	require.ErrorIs(t, err, service.ErrUnsupportedKind)

	_, err = e.creds.RegisterUser(ctx, service.RegisterInput{Username: "short", Email: "short@test.com", Password: "abc"})
	require.ErrorIs(t, err, service.ErrWeakPassword)
}

func TestConcurrentRegistrationHasOneWinner(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.creds.RegisterUser(ctx, service.RegisterInput{
				Username: "racer",
				Email:    "racer@test.com",
				Password: "fish",
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflicts)
}

func TestLoginTierOrder(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	created, err := e.creds.SeedAdmin(ctx, "admin@test.com", "root")
	require.NoError(t, err)
	require.True(t, created)

	t.Run("admin logs in through the user tier", func(t *testing.T) {
		res, err := e.creds.Login(ctx, domain.TierUser, "admin@test.com", "root", "")
		require.NoError(t, err)
		require.Equal(t, domain.KindAdmin, res.Principal.Kind)
	})

	t.Run("user entry wins when both match", func(t *testing.T) {
		_, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "shadow", Email: "admin@test.com", Password: "root"})
		require.NoError(t, err)

		res, err := e.creds.Login(ctx, domain.TierUser, "admin@test.com", "root", "")
		require.NoError(t, err)
		require.Equal(t, domain.KindUser, res.Principal.Kind)
	})

	t.Run("seeding again is a no-op", func(t *testing.T) {
		created, err := e.creds.SeedAdmin(ctx, "boss@test.com", "admin-pass")
		require.NoError(t, err)
		require.False(t, created)
	})

	t.Run("admin tier ignores users", func(t *testing.T) {
		res, err := e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", "")
		require.NoError(t, err)
		require.Equal(t, domain.KindAdmin, res.Principal.Kind)

		_, err = e.creds.Login(ctx, domain.TierAdmin, "boss@test.com", "admin-pass", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestLoginFallsThroughToAdmin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.creds.SeedAdmin(ctx, "both@test.com", "admin-pass")
	require.NoError(t, err)
	_, err = e.creds.RegisterUser(ctx, service.RegisterInput{Username: "both", Email: "both@test.com", Password: "user-pass"})
	require.NoError(t, err)

	res, err := e.creds.Login(ctx, domain.TierUser, "both@test.com", "admin-pass", "")
	require.NoError(t, err)
	require.Equal(t, domain.KindAdmin, res.Principal.Kind)

	res, err = e.creds.Login(ctx, domain.TierUser, "both@test.com", "user-pass", "")
	require.NoError(t, err)
	require.Equal(t, domain.KindUser, res.Principal.Kind)
}

func TestAdminLoginWithMFA(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	mfa := &service.MFAService{Store: e.store, Issuer: "Pathfinder", Now: e.clock.Now}

	_, err := e.creds.SeedAdmin(ctx, "admin@test.com", "root")
	require.NoError(t, err)
	admin, err := mfa.AdminByEmail(ctx, "admin@test.com")
	require.NoError(t, err)

	enrol, err := mfa.Enroll(ctx, admin.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrol.Secret)
	require.Contains(t, enrol.URL, "otpauth://totp/")

	// Enrolled but not verified: no code needed yet.
	_, err = e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", "")
	require.NoError(t, err)

	require.ErrorIs(t, mfa.Verify(ctx, admin.ID, "000000x"), service.ErrInvalidTOTPCode)

	code, err := totp.GenerateCode(enrol.Secret, e.clock.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.Verify(ctx, admin.ID, code))
	require.ErrorIs(t, mfa.Verify(ctx, admin.ID, code), service.ErrMFAAlreadyEnabled)

	_, err = mfa.Enroll(ctx, admin.ID)
	require.ErrorIs(t, err, service.ErrMFAAlreadyEnabled)

	t.Run("code required", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", "")
		require.ErrorIs(t, err, service.ErrMFARequired)
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", "12345x")
		require.ErrorIs(t, err, service.ErrInvalidTOTPCode)
	})

	t.Run("good code", func(t *testing.T) {
		code, err := totp.GenerateCode(enrol.Secret, e.clock.Now())
		require.NoError(t, err)
		res, err := e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", code)
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
	})

	t.Run("password is checked before the code", func(t *testing.T) {
		_, err := e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "wrong", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("disable", func(t *testing.T) {
		code, err := totp.GenerateCode(enrol.Secret, e.clock.Now())
		require.NoError(t, err)
		require.NoError(t, mfa.Disable(ctx, admin.ID, code))
		require.ErrorIs(t, mfa.Disable(ctx, admin.ID, code), service.ErrMFANotEnabled)

		_, err = e.creds.Login(ctx, domain.TierAdmin, "admin@test.com", "root", "")
		require.NoError(t, err)
	})
}

func TestLogoutDeletesSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	u, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)

	token := openSession(t, e, domain.KindUser, u.ID, time.Hour)

	id, err := e.resolver.SessionIdentity(ctx, token, service.KindNames(domain.TierUser))
	require.NoError(t, err)
	require.Equal(t, u.ID, id.PrincipalID)

	require.NoError(t, e.creds.Logout(ctx, token))
	_, err = e.store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	require.Error(t, err)

	// Logging out twice or without a session is fine.
	require.NoError(t, e.creds.Logout(ctx, token))
	require.NoError(t, e.creds.Logout(ctx, ""))
}
