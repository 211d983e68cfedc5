package domain

import "time"

// Session is a server-side cookie session opened by an external login.
type Session struct {
	ID            string
	TokenHash     string
	PrincipalKind Kind
	PrincipalID   string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// Live reports whether the session is still usable at now.
func (s Session) Live(now time.Time) bool { return now.Before(s.ExpiresAt) }
