package domain

import "time"

// Admin is the privileged principal. There is normally exactly one, seeded
// at startup.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	MFASecret    *string    // base32 TOTP secret, set at enrolment
	MFAEnabledAt *time.Time // set once a code has been verified
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Admin) IsAdmin() bool    { return true }
func (a Admin) MFAEnabled() bool { return a.MFAEnabledAt != nil && a.MFASecret != nil }

func (a Admin) Principal() Principal {
	p := Principal{ID: a.ID, Kind: KindAdmin, Email: a.Email, PasswordHash: a.PasswordHash}
	if a.MFAEnabled() {
		p.MFASecret = a.MFASecret
	}
	return p
}

type MFAEnrollment struct {
	Secret  string // base32 secret
	URL     string // otpauth:// URL for QR rendering
	Issuer  string
	Account string
}
