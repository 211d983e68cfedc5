package store

import (
	"context"
	"errors"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories; a Tx exposes the same repositories bound to one
// transaction, and cannot start another.
type Store interface {
	Users() Users
	Admins() Admins
	Customers() Customers
	Sessions() Sessions
	Newsletter() Newsletter
	Contacts() Contacts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. Username, email and google id are unique;
	// collisions return ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (domain.User, error)

	// GetUserByTokenHash finds the user holding a pending token with the
	// given fingerprint and purpose, regardless of expiry.
	GetUserByTokenHash(ctx context.Context, hash string, purpose domain.TokenPurpose) (domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)

	// Writes below stamp updated_at with at.
	UpdateUsername(ctx context.Context, id, username string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error
	SetGoogleID(ctx context.Context, id, googleID string, at time.Time) error

	// SetToken replaces the user's pending token.
	SetToken(ctx context.Context, id, hash string, purpose domain.TokenPurpose, expiresAt, at time.Time) error

	// ClearToken drops the pending token.
	ClearToken(ctx context.Context, id string, at time.Time) error

	// MarkConfirmed sets confirmed_at and drops the pending token.
	MarkConfirmed(ctx context.Context, id string, at time.Time) error

	DeleteUser(ctx context.Context, id string) error

	// ClearExpiredTokens drops pending tokens whose expiry is at or before now.
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type Admins interface {
	CreateAdmin(ctx context.Context, a domain.Admin) error
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)

	// IsEmpty returns true if no admin exists yet.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateMFASecret stores a pending TOTP secret without enabling MFA.
	UpdateMFASecret(ctx context.Context, id, secret string, at time.Time) error
	EnableMFA(ctx context.Context, id string, at time.Time) error
	DisableMFA(ctx context.Context, id string, at time.Time) error
}

type Customers interface {
	CreateCustomer(ctx context.Context, c domain.Customer) error
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// UpdateCustomer writes the profile fields, liked suggestions and
	// UpdatedAt of c.
	UpdateCustomer(ctx context.Context, c domain.Customer) error
	UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)
	DeleteSessionByTokenHash(ctx context.Context, hash string) error
	DeleteSessionsForPrincipal(ctx context.Context, kind domain.Kind, principalID string) error

	// DeleteExpiredSessions removes sessions whose expiry is at or before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Newsletter interface {
	CreateSubscriber(ctx context.Context, s domain.Subscriber) error
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
	DeleteSubscriber(ctx context.Context, uuid string) error
}

type Contacts interface {
	CreateContact(ctx context.Context, c domain.Contact) error
	GetContact(ctx context.Context, uuid string) (domain.Contact, error)

	// ListContacts returns every request, oldest first.
	ListContacts(ctx context.Context) ([]domain.Contact, error)

	// UpdateContact writes the name, email, processed flag and UpdatedAt of c.
	UpdateContact(ctx context.Context, c domain.Contact) error
	DeleteContact(ctx context.Context, uuid string) error
}
