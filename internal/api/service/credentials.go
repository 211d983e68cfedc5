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
	"github.com/pathfinder-tours/pathfinder/pkg/idx"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

var (
	ErrMFARequired     = errors.New("mfa code required")
	ErrInvalidTOTPCode = errors.New("invalid TOTP code")
)

type RegisterInput struct {
	Username string
	Email    string
	Password string

	// Customer profile; ignored for users.
	FirstName   string
	LastName    string
	PhoneNumber string
}

type LoginResult struct {
	Token     string
	Claims    jwtx.Claims
	Principal domain.Principal
}

// CredentialService registers principals and exchanges credentials for
// access tokens.
type CredentialService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Issuer *jwtx.Issuer
	Now    func() time.Time
}

func (s *CredentialService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a user or customer. Uniqueness is left to the store, so
// of two concurrent registrations for the same email exactly one succeeds.
func (s *CredentialService) Register(ctx context.Context, kind domain.Kind, in RegisterInput) (domain.Principal, error) {
	switch kind {
	case domain.KindUser:
		u, err := s.RegisterUser(ctx, in)
		if err != nil {
			return domain.Principal{}, err
		}
		return u.Principal(), nil
	case domain.KindCustomer:
		c, err := s.RegisterCustomer(ctx, in)
		if err != nil {
			return domain.Principal{}, err
		}
		return c.Principal(), nil
	}
	return domain.Principal{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

func (s *CredentialService) RegisterUser(ctx context.Context, in RegisterInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	hash, err := s.hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("user registration conflict", slog.String("email", u.Email))
			return domain.User{}, ErrConflict
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

func (s *CredentialService) RegisterCustomer(ctx context.Context, in RegisterInput) (domain.Customer, error) {
	log := slogx.FromContext(ctx)

	hash, err := s.hash(in.Password)
	if err != nil {
		return domain.Customer{}, err
	}

	now := s.now()
	c := domain.Customer{
		ID:               idx.NewAt(now).String(),
		Username:         strings.TrimSpace(in.Username),
		Email:            strings.TrimSpace(in.Email),
		PasswordHash:     hash,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		PhoneNumber:      in.PhoneNumber,
		LikedSuggestions: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Store.Customers().CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("customer registration conflict", slog.String("email", c.Email))
			return domain.Customer{}, ErrConflict
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	log.Info("customer registered", slog.String("customer_id", c.ID))
	return c, nil
}

// Login walks the tier's collections in order. The first collection where
// the email exists and the password verifies wins.
func (s *CredentialService) Login(ctx context.Context, tier domain.Tier, email, password, otp string) (LoginResult, error) {
	log := slogx.FromContext(ctx).With(slog.String("tier", tier.Name))
	email = strings.TrimSpace(email)

	for _, kind := range tier.Kinds {
		p, err := principalByEmail(ctx, s.Store, kind, email)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return LoginResult{}, fmt.Errorf("lookup %s: %w", kind, err)
		}

		if err := s.Hasher.Verify(password, p.PasswordHash); err != nil {
			if !errors.Is(err, cryptox.ErrPasswordMismatch) {
				log.Error("stored password hash unusable",
					slog.String("kind", kind.String()),
					slog.String("principal_id", p.ID),
					slog.Any("error", err),
				)
			}
			continue
		}

		if p.MFASecret != nil {
			if otp == "" {
				log.Info("login needs mfa code", slog.String("principal_id", p.ID))
				return LoginResult{}, ErrMFARequired
			}
			if !validateTOTP(otp, *p.MFASecret, s.now()) {
				log.Warn("login with invalid totp code", slog.String("principal_id", p.ID))
				return LoginResult{}, ErrInvalidTOTPCode
			}
		}

		token, claims, err := s.Issuer.Issue(p.Email, p.Kind.String())
		if err != nil {
			return LoginResult{}, err
		}
		log.Info("login succeeded",
			slog.String("kind", p.Kind.String()),
			slog.String("principal_id", p.ID),
		)
		return LoginResult{Token: token, Claims: claims, Principal: p}, nil
	}

	log.Info("login failed")
	return LoginResult{}, ErrInvalidCredentials
}

// Logout drops the server-side session behind a cookie token, if any.
// Bearer tokens are stateless and stay valid until they expire.
func (s *CredentialService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(sessionToken))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SeedAdmin creates the privileged admin if none exists yet. It reports
// whether a record was written.
func (s *CredentialService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	log := slogx.FromContext(ctx)

	empty, err := s.Store.Admins().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("check admins: %w", err)
	}
	if !empty {
		return false, nil
	}

	hash, err := s.hash(password)
	if err != nil {
		return false, err
	}

	now := s.now()
	a := domain.Admin{
		ID:           idx.NewAt(now).String(),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Admins().CreateAdmin(ctx, a); err != nil {
		// Another instance seeded first.
		if errors.Is(err, store.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	log.Info("admin seeded", slog.String("admin_id", a.ID))
	return true, nil
}

func (s *CredentialService) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
