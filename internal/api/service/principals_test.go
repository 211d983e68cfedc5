package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/idx"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, e *env, kind domain.Kind, principalID string, ttl time.Duration) string {
	t.Helper()

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	now := e.clock.Now()
	require.NoError(t, e.store.Sessions().CreateSession(context.Background(), domain.Session{
		ID:            idx.New().String(),
		TokenHash:     cryptox.FingerprintToken(token),
		PrincipalKind: kind,
		PrincipalID:   principalID,
		ExpiresAt:     now.Add(ttl),
		CreatedAt:     now,
	}))
	return token
}

func TestSessionIdentity(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	userKinds := service.KindNames(domain.TierUser)

	u, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)

	t.Run("live session resolves by id", func(t *testing.T) {
		token := openSession(t, e, domain.KindUser, u.ID, time.Hour)
		id, err := e.resolver.SessionIdentity(ctx, token, userKinds)
		require.NoError(t, err)
		require.Equal(t, httpx.Identity{Email: "test@test.com", Kind: "user", PrincipalID: u.ID}, id)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := e.resolver.SessionIdentity(ctx, "nope", userKinds)
		require.ErrorIs(t, err, httpx.ErrNoSession)
	})

	t.Run("expired at the boundary", func(t *testing.T) {
		token := openSession(t, e, domain.KindUser, u.ID, time.Minute)
		start := e.clock.Now()
		t.Cleanup(func() { e.clock.Set(start) })

		e.clock.Advance(time.Minute - time.Millisecond)
		_, err := e.resolver.SessionIdentity(ctx, token, userKinds)
		require.NoError(t, err)

		e.clock.Advance(time.Millisecond)
		_, err = e.resolver.SessionIdentity(ctx, token, userKinds)
		require.ErrorIs(t, err, httpx.ErrNoSession)
	})

	t.Run("wrong tier", func(t *testing.T) {
		token := openSession(t, e, domain.KindUser, u.ID, time.Hour)
		_, err := e.resolver.SessionIdentity(ctx, token, service.KindNames(domain.TierCustomer))
		require.ErrorIs(t, err, httpx.ErrNoPrincipal)
	})

	t.Run("deleted principal", func(t *testing.T) {
		gone, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "gone", Email: "gone@test.com", Password: "fish"})
		require.NoError(t, err)
		token := openSession(t, e, domain.KindUser, gone.ID, time.Hour)

		// Remove the row directly so the session outlives it.
		require.NoError(t, e.store.Users().DeleteUser(ctx, gone.ID))
		_, err = e.resolver.SessionIdentity(ctx, token, userKinds)
		require.ErrorIs(t, err, httpx.ErrNoPrincipal)
	})
}

func TestEmailIdentity(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.creds.SeedAdmin(ctx, "admin@test.com", "root")
	require.NoError(t, err)

	id, err := e.resolver.EmailIdentity(ctx, "admin@test.com", service.KindNames(domain.TierUser))
	require.NoError(t, err)
	require.Equal(t, "admin", id.Kind)
	require.NotEmpty(t, id.PrincipalID)

	_, err = e.resolver.EmailIdentity(ctx, "admin@test.com", service.KindNames(domain.TierCustomer))
	require.ErrorIs(t, err, httpx.ErrNoPrincipal)

	u, err := e.creds.RegisterUser(ctx, service.RegisterInput{Username: "admin", Email: "admin@test.com", Password: "fish"})
	require.NoError(t, err)
	id, err = e.resolver.EmailIdentity(ctx, "admin@test.com", service.KindNames(domain.TierUser))
	require.NoError(t, err)
	require.Equal(t, httpx.Identity{Email: "admin@test.com", Kind: "user", PrincipalID: u.ID}, id)
}
