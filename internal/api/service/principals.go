package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
)

// principalByEmail looks the email up in one collection.
func principalByEmail(ctx context.Context, st store.Store, kind domain.Kind, email string) (domain.Principal, error) {
	switch kind {
	case domain.KindUser:
		u, err := st.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, err
		}
		return u.Principal(), nil
	case domain.KindAdmin:
		a, err := st.Admins().GetAdminByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, err
		}
		return a.Principal(), nil
	case domain.KindCustomer:
		c, err := st.Customers().GetCustomerByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, err
		}
		return c.Principal(), nil
	}
	return domain.Principal{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

func principalByID(ctx context.Context, st store.Store, kind domain.Kind, id string) (domain.Principal, error) {
	switch kind {
	case domain.KindUser:
		u, err := st.Users().GetUserByID(ctx, id)
		if err != nil {
			return domain.Principal{}, err
		}
		return u.Principal(), nil
	case domain.KindAdmin:
		a, err := st.Admins().GetAdminByID(ctx, id)
		if err != nil {
			return domain.Principal{}, err
		}
		return a.Principal(), nil
	case domain.KindCustomer:
		c, err := st.Customers().GetCustomerByID(ctx, id)
		if err != nil {
			return domain.Principal{}, err
		}
		return c.Principal(), nil
	}
	return domain.Principal{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

func identityOf(p domain.Principal) httpx.Identity {
	return httpx.Identity{Email: p.Email, Kind: p.Kind.String(), PrincipalID: p.ID}
}

// PrincipalResolver answers the guards' lookups against the store.
type PrincipalResolver struct {
	Store store.Store
	Now   func() time.Time
}

var _ httpx.Principals = (*PrincipalResolver)(nil)

func (r *PrincipalResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// SessionIdentity resolves a cookie session token by primary key.
func (r *PrincipalResolver) SessionIdentity(ctx context.Context, token string, kinds []string) (httpx.Identity, error) {
	sess, err := r.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return httpx.Identity{}, httpx.ErrNoSession
	}
	if err != nil {
		return httpx.Identity{}, fmt.Errorf("get session: %w", err)
	}
	if !sess.Live(r.now()) {
		return httpx.Identity{}, httpx.ErrNoSession
	}

	if !containsKind(kinds, sess.PrincipalKind) {
		return httpx.Identity{}, httpx.ErrNoPrincipal
	}

	p, err := principalByID(ctx, r.Store, sess.PrincipalKind, sess.PrincipalID)
	if errors.Is(err, store.ErrNotFound) {
		return httpx.Identity{}, httpx.ErrNoPrincipal
	}
	if err != nil {
		return httpx.Identity{}, fmt.Errorf("get session principal: %w", err)
	}
	return identityOf(p), nil
}

// EmailIdentity returns the first collection in kinds holding the email.
func (r *PrincipalResolver) EmailIdentity(ctx context.Context, email string, kinds []string) (httpx.Identity, error) {
	for _, k := range kinds {
		p, err := principalByEmail(ctx, r.Store, domain.Kind(k), email)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return httpx.Identity{}, fmt.Errorf("get %s by email: %w", k, err)
		}
		return identityOf(p), nil
	}
	return httpx.Identity{}, httpx.ErrNoPrincipal
}

func containsKind(kinds []string, k domain.Kind) bool {
	for _, want := range kinds {
		if want == k.String() {
			return true
		}
	}
	return false
}

// KindNames converts a tier for use in a guard config.
func KindNames(t domain.Tier) []string {
	out := make([]string, len(t.Kinds))
	for i, k := range t.Kinds {
		out[i] = k.String()
	}
	return out
}
