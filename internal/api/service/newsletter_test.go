package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewsletter(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := &mailer.Recorder{}
	news := &service.NewsletterService{Store: e.store, Mailer: rec, Now: e.clock.Now}

	t.Run("send with no subscribers", func(t *testing.T) {
		_, err := news.Send(ctx, domain.Newsletter{Subject: "hi", Text: "hello"})
		require.ErrorIs(t, err, service.ErrNoSubscribers)
	})

	for i, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
		e.clock.Advance(time.Duration(i) * time.Millisecond)
		require.NoError(t, news.Subscribe(ctx, email))
	}
	require.NoError(t, news.Subscribe(ctx, "A@test.com"))

	subs, err := news.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)

	t.Run("send to all", func(t *testing.T) {
		report, err := news.Send(ctx, domain.Newsletter{Subject: "Tours", Text: "New parkours!"})
		require.NoError(t, err)
		require.Equal(t, domain.SendReport{Total: 3, Sent: 3}, report)
		require.Len(t, rec.Sent(), 3)
		for _, m := range rec.Sent() {
			require.Len(t, m.To, 1)
			require.Equal(t, "Tours", m.Subject)
		}
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		boom := errors.New("mailbox full")
		failing := &mailer.Recorder{FailOn: map[string]error{"b@test.com": boom}}
		news := &service.NewsletterService{Store: e.store, Mailer: failing}

		report, err := news.Send(ctx, domain.Newsletter{Subject: "Tours", Text: "again"})
		require.ErrorIs(t, err, boom)
		require.Equal(t, domain.SendReport{Total: 3, Sent: 1, FailedFor: "b@test.com"}, report)
		require.Len(t, failing.Sent(), 1)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		require.NoError(t, news.Unsubscribe(ctx, subs[0].UUID))
		require.ErrorIs(t, news.Unsubscribe(ctx, subs[0].UUID), service.ErrSubscriberNotFound)

		left, err := news.List(ctx)
		require.NoError(t, err)
		require.Len(t, left, 2)
	})
}

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.lifecycle.CI = true
	u := registerTestUser(t, e, "test")

	_ = openSession(t, e, domain.KindUser, u.ID, 2*time.Hour)
	_ = openSession(t, e, domain.KindUser, u.ID, time.Minute)
	_, err := e.lifecycle.RequestEmailConfirmation(ctx, u.ID)
	require.NoError(t, err)

	hk := service.NewHousekeepingService(e.store, slogx.Discard(), time.Hour)
	hk.Now = e.clock.Now

	sessions, tokens := hk.Cleanup(ctx)
	require.Zero(t, sessions)
	require.Zero(t, tokens)

	e.clock.Advance(90 * time.Minute)
	sessions, tokens = hk.Cleanup(ctx)
	require.EqualValues(t, 1, sessions)
	require.Zero(t, tokens)

	e.clock.Advance(24 * time.Hour)
	sessions, tokens = hk.Cleanup(ctx)
	require.EqualValues(t, 1, sessions)
	require.EqualValues(t, 1, tokens)

	got, err := e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.TokenHash)
}

func TestHousekeepingStartStop(t *testing.T) {
	e := newEnv(t)
	hk := service.NewHousekeepingService(e.store, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
