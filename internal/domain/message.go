package domain

import "time"

// Message is a direct message between two users. Passive shape: persisted and
// returned as-is, no handler mutates it.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Body       string
	TimeSent   time.Time
}
