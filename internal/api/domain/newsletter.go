package domain

import "time"

type Subscriber struct {
	UUID      string
	Email     string
	CreatedAt time.Time
}

// Newsletter is one message fanned out to every subscriber.
type Newsletter struct {
	Subject string
	Text    string
}

// SendReport summarises a fan-out. Sending stops at the first failure.
type SendReport struct {
	Total     int
	Sent      int
	FailedFor string // email of the subscriber that failed, if any
}
