package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this admin")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this admin")
)

// MFAService manages TOTP for the admin account.
type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps
	Now    func() time.Time
}

func (s *MFAService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Enroll generates and stores a TOTP secret. MFA stays off until Verify
// accepts a code; enrolling again replaces the pending secret.
func (s *MFAService) Enroll(ctx context.Context, adminID string) (domain.MFAEnrollment, error) {
	a, err := s.admin(ctx, adminID)
	if err != nil {
		return domain.MFAEnrollment{}, err
	}
	if a.MFAEnabled() {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: a.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Admins().UpdateMFASecret(ctx, a.ID, key.Secret(), s.now()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("store mfa secret: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: a.Email,
	}, nil
}

// Verify checks a code against the pending secret and enables MFA.
func (s *MFAService) Verify(ctx context.Context, adminID, code string) error {
	a, err := s.admin(ctx, adminID)
	if err != nil {
		return err
	}
	if a.MFASecret == nil || *a.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if a.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}

	if !validateTOTP(code, *a.MFASecret, s.now()) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Admins().EnableMFA(ctx, a.ID, s.now()); err != nil {
		return fmt.Errorf("enable mfa: %w", err)
	}
	slogx.FromContext(ctx).Info("admin mfa enabled", slog.String("admin_id", a.ID))
	return nil
}

// Disable turns MFA off after checking a current code.
func (s *MFAService) Disable(ctx context.Context, adminID, code string) error {
	a, err := s.admin(ctx, adminID)
	if err != nil {
		return err
	}
	if !a.MFAEnabled() {
		return ErrMFANotEnabled
	}
	if !validateTOTP(code, *a.MFASecret, s.now()) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Admins().DisableMFA(ctx, a.ID, s.now()); err != nil {
		return fmt.Errorf("disable mfa: %w", err)
	}
	slogx.FromContext(ctx).Info("admin mfa disabled", slog.String("admin_id", a.ID))
	return nil
}

// AdminByEmail resolves the admin behind a token identity.
func (s *MFAService) AdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	a, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrAdminNotFound
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// validateTOTP accepts codes from the adjacent periods as well.
func validateTOTP(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func (s *MFAService) admin(ctx context.Context, id string) (domain.Admin, error) {
	a, err := s.Store.Admins().GetAdminByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrAdminNotFound
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}
