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

// CustomerPatch holds optional profile changes. Empty strings keep the
// current value; a nil LikedSuggestions keeps the list, an empty one clears it.
type CustomerPatch struct {
	Username         string
	Password         string
	FirstName        string
	LastName         string
	PhoneNumber      string
	LikedSuggestions []string
}

type CustomerService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Now    func() time.Time
}

func (s *CustomerService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	cs, err := s.Store.Customers().ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return cs, nil
}

func (s *CustomerService) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	c, err := s.Store.Customers().GetCustomerByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update applies patch to the customer with id and returns the result.
func (s *CustomerService) Update(ctx context.Context, id string, patch CustomerPatch) (domain.Customer, error) {
	var hash string
	if patch.Password != "" {
		if len(patch.Password) < MinPasswordLength {
			return domain.Customer{}, ErrWeakPassword
		}
		var err error
		if hash, err = s.Hasher.Hash(patch.Password); err != nil {
			return domain.Customer{}, fmt.Errorf("hash password: %w", err)
		}
	}

	var out domain.Customer
	now := s.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Customers().GetCustomerByID(ctx, id)
		if err != nil {
			return err
		}

		c.Username = keep(strings.TrimSpace(patch.Username), c.Username)
		c.FirstName = keep(patch.FirstName, c.FirstName)
		c.LastName = keep(patch.LastName, c.LastName)
		c.PhoneNumber = keep(patch.PhoneNumber, c.PhoneNumber)
		if patch.LikedSuggestions != nil {
			c.LikedSuggestions = patch.LikedSuggestions
		}
		c.UpdatedAt = now

		if err := tx.Customers().UpdateCustomer(ctx, c); err != nil {
			return err
		}
		if hash != "" {
			if err := tx.Customers().UpdatePasswordHash(ctx, id, hash, now); err != nil {
				return err
			}
		}

		out, err = tx.Customers().GetCustomerByID(ctx, id)
		return err
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Customer{}, ErrCustomerNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Customer{}, ErrConflict
	case err != nil:
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	slogx.FromContext(ctx).Info("customer updated", slog.String("customer_id", id))
	return out, nil
}

func keep(v, current string) string {
	if v == "" {
		return current
	}
	return v
}
