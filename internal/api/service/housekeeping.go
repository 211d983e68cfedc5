package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/store"
)

// HousekeepingService periodically deletes expired cookie sessions and
// clears lapsed confirmation and reset tokens.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass. Each deletion is independent; a failure in
// one does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) (sessions, tokens int64) {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	tokens, err = s.Store.Users().ClearExpiredTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to clear expired tokens", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_sessions", sessions,
		"expired_tokens", tokens,
	)
	return sessions, tokens
}
