package domain

import "time"

// TokenPurpose tells what a user's pending one-time token is for. A user
// holds at most one pending token; issuing a new one replaces the old.
type TokenPurpose string

const (
	PurposeConfirm TokenPurpose = "confirm"
	PurposeReset   TokenPurpose = "reset"
)

type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string // argon2id PHC string
	OrganisationID *string
	GoogleID       *string
	ConfirmedAt    *time.Time

	TokenHash      *string // fingerprint of the pending one-time token
	TokenPurpose   *TokenPurpose
	TokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Confirmed() bool { return u.ConfirmedAt != nil }

func (u User) Principal() Principal {
	return Principal{ID: u.ID, Kind: KindUser, Email: u.Email, PasswordHash: u.PasswordHash}
}
