package domain

import "time"

// Contact is a request left through the public contact form.
type Contact struct {
	UUID        string
	Name        string
	Category    string
	Description string
	Email       string
	Processed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactUpdate is an admin's triage of a contact request. Category and
// Description are what the sender wrote and never change.
type ContactUpdate struct {
	Name      string
	Email     string
	Processed bool
}
