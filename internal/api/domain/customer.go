package domain

import "time"

// Customer is an end customer of the tour platform, separate from the
// User collection.
type Customer struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	PhoneNumber      string
	LikedSuggestions []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Customer) Principal() Principal {
	return Principal{ID: c.ID, Kind: KindCustomer, Email: c.Email, PasswordHash: c.PasswordHash}
}
