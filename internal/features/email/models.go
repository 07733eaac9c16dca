package email

import "time"

// Email is the queued form of an outgoing message.
type Email struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	HTMLBody string    `json:"htmlBody"`
	QueuedAt time.Time `json:"queuedAt"`
}
