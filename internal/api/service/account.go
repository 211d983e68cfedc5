package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

// AccountPatch carries the optional fields of a self-service update. Empty
// values keep the current ones.
type AccountPatch struct {
	Username string
	Password string
}

type AccountService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Now    func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AccountService) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.mapUser(s.Store.Users().GetUserByUsername(ctx, username))
}

func (s *AccountService) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.mapUser(s.Store.Users().GetUserByEmail(ctx, email))
}

func (s *AccountService) UserByID(ctx context.Context, id string) (domain.User, error) {
	return s.mapUser(s.Store.Users().GetUserByID(ctx, id))
}

// DeleteUser removes the user together with any cookie sessions they hold.
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeleteSessionsForPrincipal(ctx, domain.KindUser, id); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return tx.Users().DeleteUser(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", id))
	return nil
}

// UpdateUser applies a patch and returns the stored result. A username
// already in use yields ErrConflict.
func (s *AccountService) UpdateUser(ctx context.Context, id string, patch AccountPatch) (domain.User, error) {
	var hash string
	if patch.Password != "" {
		if len(patch.Password) < MinPasswordLength {
			return domain.User{}, ErrWeakPassword
		}
		var err error
		if hash, err = s.Hasher.Hash(patch.Password); err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	var out domain.User
	now := s.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if name := strings.TrimSpace(patch.Username); name != "" {
			if err := tx.Users().UpdateUsername(ctx, id, name, now); err != nil {
				return err
			}
		}
		if hash != "" {
			if err := tx.Users().UpdatePasswordHash(ctx, id, hash, now); err != nil {
				return err
			}
		}
		u, err := tx.Users().GetUserByID(ctx, id)
		out = u
		return err
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrUserNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrConflict
	case err != nil:
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return out, nil
}

func (s *AccountService) mapUser(u domain.User, err error) (domain.User, error) {
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
