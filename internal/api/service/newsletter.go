package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

var ErrNoSubscribers = errors.New("no subscribers")

type NewsletterService struct {
	Store  store.Store
	Mailer mailer.Mailer
	Now    func() time.Time
}

// Subscribe adds email to the list. Subscribing twice is not an error.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	sub := domain.Subscriber{
		UUID:      uuid.NewString(),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
	}
	err := s.Store.Newsletter().CreateSubscriber(ctx, sub)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	slogx.FromContext(ctx).Info("newsletter subscriber added", slog.String("uuid", sub.UUID))
	return nil
}

func (s *NewsletterService) List(ctx context.Context) ([]domain.Subscriber, error) {
	subs, err := s.Store.Newsletter().ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, id string) error {
	err := s.Store.Newsletter().DeleteSubscriber(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSubscriberNotFound
	}
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

// Send mails n to every subscriber, one message each, in list order. It
// stops at the first failure and reports how far it got; nothing is retried
// and messages already sent stay sent.
func (s *NewsletterService) Send(ctx context.Context, n domain.Newsletter) (domain.SendReport, error) {
	log := slogx.FromContext(ctx)

	subs, err := s.List(ctx)
	if err != nil {
		return domain.SendReport{}, err
	}
	report := domain.SendReport{Total: len(subs)}
	if len(subs) == 0 {
		return report, ErrNoSubscribers
	}

	for _, sub := range subs {
		msg := mailer.Message{To: []string{sub.Email}, Subject: n.Subject, Text: n.Text}
		if err := s.Mailer.Send(ctx, msg); err != nil {
			report.FailedFor = sub.Email
			log.Error("newsletter send aborted",
				slog.Int("sent", report.Sent),
				slog.Int("total", report.Total),
				slog.Any("error", err),
			)
			return report, fmt.Errorf("send newsletter to %s: %w", sub.Email, err)
		}
		report.Sent++
	}

	log.Info("newsletter sent", slog.Int("total", report.Total))
	return report, nil
}
