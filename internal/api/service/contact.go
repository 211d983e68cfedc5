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
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

// ContactService stores contact form requests and lets the admin triage
// them.
type ContactService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ContactService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit records a new, unprocessed request.
func (s *ContactService) Submit(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	now := s.now()
	c.UUID = uuid.NewString()
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Processed = false
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.Store.Contacts().CreateContact(ctx, c); err != nil {
		return domain.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	slogx.FromContext(ctx).Info("contact request received",
		slog.String("uuid", c.UUID),
		slog.String("category", c.Category),
	)
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	cs, err := s.Store.Contacts().ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return cs, nil
}

// Update applies an admin triage to the request and returns the result.
func (s *ContactService) Update(ctx context.Context, id string, u domain.ContactUpdate) (domain.Contact, error) {
	var out domain.Contact
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Contacts().GetContact(ctx, id)
		if err != nil {
			return err
		}
		c.Name = strings.TrimSpace(u.Name)
		c.Email = strings.TrimSpace(u.Email)
		c.Processed = u.Processed
		c.UpdatedAt = s.now()

		if err := tx.Contacts().UpdateContact(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Contact{}, ErrContactNotFound
	}
	if err != nil {
		return domain.Contact{}, fmt.Errorf("update contact: %w", err)
	}

	slogx.FromContext(ctx).Info("contact request updated",
		slog.String("uuid", id),
		slog.Bool("processed", out.Processed),
	)
	return out, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	err := s.Store.Contacts().DeleteContact(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrContactNotFound
	}
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
