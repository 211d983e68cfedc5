package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, e *env, name string) domain.User {
	t.Helper()
	u, err := e.creds.RegisterUser(context.Background(), service.RegisterInput{
		Username: name,
		Email:    name + "@test.com",
		Password: "fish",
	})
	require.NoError(t, err)
	return u
}

func TestConfirmEmail(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.lifecycle.CI = true
	u := registerTestUser(t, e, "test")

	t.Run("ci mode returns the token and sends nothing", func(t *testing.T) {
		d, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, d.Token, 64)
		require.False(t, d.Sent)
		require.Empty(t, e.mail.Sent())
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := e.lifecycle.RequestEmailConfirmation(ctx, "missing")
		require.ErrorIs(t, err, service.ErrUserNotFound)
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, "nobody@test.com", "x"), service.ErrUserNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, u.Email, "deadbeef"), service.ErrInvalidOrExpiredToken)
	})

	t.Run("a newer token replaces the old one", func(t *testing.T) {
		first, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)
		_, err = e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, u.Email, first.Token), service.ErrInvalidOrExpiredToken)
	})

	t.Run("reset token cannot confirm", func(t *testing.T) {
		d, err := e.lifecycle.RequestPasswordReset(ctx, u.ID)
		require.NoError(t, err)
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, u.Email, d.Token), service.ErrInvalidOrExpiredToken)
	})

	t.Run("expired exactly at the deadline", func(t *testing.T) {
		d, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)

		start := e.clock.Now()
		t.Cleanup(func() { e.clock.Set(start) })
		e.clock.Advance(24 * time.Hour)
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, u.Email, d.Token), service.ErrInvalidOrExpiredToken)
	})

	t.Run("valid just before the deadline", func(t *testing.T) {
		d, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)

		start := e.clock.Now()
		t.Cleanup(func() { e.clock.Set(start) })
		e.clock.Advance(24*time.Hour - time.Millisecond)
		require.NoError(t, e.lifecycle.ConfirmEmail(ctx, u.Email, d.Token))

		got, err := e.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.Confirmed())
		require.Nil(t, got.TokenHash)
		require.Nil(t, got.TokenExpiresAt)
		require.True(t, got.UpdatedAt.Equal(e.clock.Now()))

		// Spent.
		require.ErrorIs(t, e.lifecycle.ConfirmEmail(ctx, u.Email, d.Token), service.ErrInvalidOrExpiredToken)
	})
}

func TestConfirmEmailKeepsReissuedToken(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.lifecycle.CI = true
	u := registerTestUser(t, e, "racer")

	for range 20 {
		first, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)

		var (
			wg         sync.WaitGroup
			confirmErr error
			second     service.Delivery
			issueErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			confirmErr = e.lifecycle.ConfirmEmail(ctx, u.Email, first.Token)
		}()
		go func() {
			defer wg.Done()
			second, issueErr = e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		}()
		wg.Wait()
		require.NoError(t, issueErr)

		got, err := e.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		if confirmErr != nil {
			require.ErrorIs(t, confirmErr, service.ErrInvalidOrExpiredToken)
		}
		// Whichever ran first, the second token is never wiped.
		require.NotNil(t, got.TokenHash)
		require.Equal(t, cryptox.FingerprintToken(second.Token), *got.TokenHash)
	}
}

func TestConfirmationMail(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := registerTestUser(t, e, "test")

	d, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, d.Sent)
	require.Empty(t, d.Token)

	msg, ok := e.mail.Last()
	require.True(t, ok)
	require.Equal(t, []string{"test@test.com"}, msg.To)
	require.Contains(t, msg.Text, "http://localhost:4000/api/accounts/confirm?")

	// Pull the token out of the link and use it.
	i := strings.Index(msg.Text, "token=")
	require.Positive(t, i)
	token := msg.Text[i+len("token=") : i+len("token=")+64]
	require.NoError(t, e.lifecycle.ConfirmEmail(ctx, u.Email, token))

	t.Run("mailer failure surfaces", func(t *testing.T) {
		boom := errors.New("smtp down")
		e.lifecycle.Mailer = &mailer.Recorder{FailOn: map[string]error{u.Email: boom}}
		t.Cleanup(func() { e.lifecycle.Mailer = e.mail })

		_, err := e.lifecycle.RequestPasswordReset(ctx, u.ID)
		require.ErrorIs(t, err, boom)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.lifecycle.CI = true
	u := registerTestUser(t, e, "test")

	t.Run("token is single use", func(t *testing.T) {
		d, err := e.lifecycle.RequestPasswordReset(ctx, u.ID)
		require.NoError(t, err)

		require.NoError(t, e.lifecycle.ResetPassword(ctx, d.Token, "chips"))
		require.ErrorIs(t, e.lifecycle.ResetPassword(ctx, d.Token, "again"), service.ErrTokenNotFound)

		_, err = e.creds.Login(ctx, domain.TierUser, u.Email, "fish", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
		_, err = e.creds.Login(ctx, domain.TierUser, u.Email, "chips", "")
		require.NoError(t, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		require.ErrorIs(t, e.lifecycle.ResetPassword(ctx, "nope", "chips"), service.ErrTokenNotFound)
	})

	t.Run("confirmation token cannot reset", func(t *testing.T) {
		d, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
		require.NoError(t, err)
		require.ErrorIs(t, e.lifecycle.ResetPassword(ctx, d.Token, "chips"), service.ErrTokenNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		d, err := e.lifecycle.RequestPasswordReset(ctx, u.ID)
		require.NoError(t, err)

		start := e.clock.Now()
		t.Cleanup(func() { e.clock.Set(start) })
		e.clock.Advance(24 * time.Hour)
		require.ErrorIs(t, e.lifecycle.ResetPassword(ctx, d.Token, "chips"), service.ErrTokenNotFound)
	})

	t.Run("weak password leaves the token usable", func(t *testing.T) {
		d, err := e.lifecycle.RequestPasswordReset(ctx, u.ID)
		require.NoError(t, err)
		require.ErrorIs(t, e.lifecycle.ResetPassword(ctx, d.Token, "x"), service.ErrWeakPassword)
		require.NoError(t, e.lifecycle.ResetPassword(ctx, d.Token, "lobster"))
	})

	t.Run("by email", func(t *testing.T) {
		d, err := e.lifecycle.RequestPasswordResetByEmail(ctx, "TEST@test.com")
		require.NoError(t, err)
		require.NotEmpty(t, d.Token)
		require.NoError(t, e.lifecycle.ResetPassword(ctx, d.Token, "fish"))

		d, err = e.lifecycle.RequestPasswordResetByEmail(ctx, "nobody@test.com")
		require.NoError(t, err)
		require.Equal(t, service.Delivery{}, d)
	})
}
