package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

const (
	DefaultConfirmationTokenTTL = 24 * time.Hour

	confirmationTokenBytes = cryptox.TokenSize256
)

// Delivery is the outcome of issuing a one-time token. Token is only set
// in CI mode, where the mail is skipped and the caller gets the raw value.
type Delivery struct {
	Token string
	Sent  bool
}

// LifecycleService runs the email confirmation and password reset flows.
// Both share the user's single pending token slot.
type LifecycleService struct {
	Store  store.Store
	Mailer mailer.Mailer
	Hasher *cryptox.Hasher

	// CI skips mail delivery and hands the raw token back instead.
	CI bool

	TokenTTL  time.Duration
	PublicURL string
	Now       func() time.Time
}

func (s *LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LifecycleService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultConfirmationTokenTTL
}

// RequestEmailConfirmation issues a confirmation token for the user.
func (s *LifecycleService) RequestEmailConfirmation(ctx context.Context, userID string) (Delivery, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return Delivery{}, err
	}
	return s.issue(ctx, u, domain.PurposeConfirm)
}

// ConfirmEmail marks the user confirmed when token matches the pending
// confirmation token and now is strictly before its expiry.
func (s *LifecycleService) ConfirmEmail(ctx context.Context, email, token string) error {
	log := slogx.FromContext(ctx)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if !s.pending(u, domain.PurposeConfirm, token) {
			log.Info("email confirmation rejected", slog.String("user_id", u.ID))
			return ErrInvalidOrExpiredToken
		}

		if err := tx.Users().MarkConfirmed(ctx, u.ID, s.now()); err != nil {
			return fmt.Errorf("mark confirmed: %w", err)
		}
		log.Info("email confirmed", slog.String("user_id", u.ID))
		return nil
	})
}

// RequestPasswordReset issues a reset token for an authenticated user.
func (s *LifecycleService) RequestPasswordReset(ctx context.Context, userID string) (Delivery, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return Delivery{}, err
	}
	return s.issue(ctx, u, domain.PurposeReset)
}

// RequestPasswordResetByEmail is the unauthenticated variant. An unknown
// email yields an empty Delivery and no error, so callers cannot learn
// which addresses are registered.
func (s *LifecycleService) RequestPasswordResetByEmail(ctx context.Context, email string) (Delivery, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Info("password reset for unknown email")
		return Delivery{}, nil
	}
	if err != nil {
		return Delivery{}, fmt.Errorf("get user: %w", err)
	}
	return s.issue(ctx, u, domain.PurposeReset)
}

// ResetPassword locates the user by token alone. The token is spent on
// success, so replaying it fails with ErrTokenNotFound.
func (s *LifecycleService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByTokenHash(ctx, cryptox.FingerprintToken(token), domain.PurposeReset)
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("get user by token: %w", err)
		}
		if u.TokenExpiresAt == nil || !s.now().Before(*u.TokenExpiresAt) {
			log.Info("expired reset token presented", slog.String("user_id", u.ID))
			return ErrTokenNotFound
		}

		hash, err := s.Hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		now := s.now()
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, now); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := tx.Users().ClearToken(ctx, u.ID, now); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}

		log.Info("password reset", slog.String("user_id", u.ID))
		return nil
	})
}

func (s *LifecycleService) user(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *LifecycleService) pending(u domain.User, purpose domain.TokenPurpose, token string) bool {
	if u.TokenHash == nil || u.TokenPurpose == nil || u.TokenExpiresAt == nil {
		return false
	}
	if *u.TokenPurpose != purpose {
		return false
	}
	got := cryptox.FingerprintToken(token)
	if subtle.ConstantTimeCompare([]byte(got), []byte(*u.TokenHash)) != 1 {
		return false
	}
	return s.now().Before(*u.TokenExpiresAt)
}

// issue replaces the user's pending token and delivers it.
func (s *LifecycleService) issue(ctx context.Context, u domain.User, purpose domain.TokenPurpose) (Delivery, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("user_id", u.ID),
		slog.String("purpose", string(purpose)),
	)

	token, err := cryptox.GenerateHexToken(confirmationTokenBytes)
	if err != nil {
		return Delivery{}, fmt.Errorf("generate token: %w", err)
	}
	now := s.now()
	expiresAt := now.Add(s.ttl())
	if err := s.Store.Users().SetToken(ctx, u.ID, cryptox.FingerprintToken(token), purpose, expiresAt, now); err != nil {
		return Delivery{}, fmt.Errorf("store token: %w", err)
	}

	if s.CI {
		log.Debug("ci mode: returning token instead of mailing it")
		return Delivery{Token: token}, nil
	}

	if err := s.Mailer.Send(ctx, s.message(u, purpose, token, expiresAt)); err != nil {
		return Delivery{}, fmt.Errorf("send %s mail: %w", purpose, err)
	}
	log.Info("token mailed")
	return Delivery{Sent: true}, nil
}

func (s *LifecycleService) message(u domain.User, purpose domain.TokenPurpose, token string, expiresAt time.Time) mailer.Message {
	base := strings.TrimRight(s.PublicURL, "/")

	switch purpose {
	case domain.PurposeReset:
		return mailer.Message{
			To:      []string{u.Email},
			Subject: "Reset your password",
			Text: fmt.Sprintf(
				"Hello %s,\n\nUse this token to reset your password: %s\n\nIt expires at %s.\n",
				u.Username, token, expiresAt.Format(time.RFC1123),
			),
		}
	default:
		q := url.Values{}
		q.Set("email", u.Email)
		q.Set("token", token)
		return mailer.Message{
			To:      []string{u.Email},
			Subject: "Confirm your email",
			Text: fmt.Sprintf(
				"Hello %s,\n\nConfirm your email by opening:\n%s/api/accounts/confirm?%s\n\nThe link expires at %s.\n",
				u.Username, base, q.Encode(), expiresAt.Format(time.RFC1123),
			),
		}
	}
}
