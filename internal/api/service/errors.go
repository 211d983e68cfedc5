package service

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrConflict              = errors.New("email or username already taken")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrTokenNotFound         = errors.New("token not found or expired")
	ErrUserNotFound          = errors.New("user not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrSubscriberNotFound    = errors.New("subscriber not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrAdminNotFound         = errors.New("admin not found")
	ErrUnsupportedKind       = errors.New("unsupported principal kind")
	ErrWeakPassword          = errors.New("password too short")
)

// MinPasswordLength applies to every password the service stores.
const MinPasswordLength = 4
