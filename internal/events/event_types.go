package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventPostCreated     EventType = "post_created"
	EventPostDeleted     EventType = "post_deleted"
	EventRoommateCreated EventType = "roommate_created"
	EventTradeInitiated  EventType = "trade_initiated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccountName string `json:"account_name"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID     string   `json:"post_id"`
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
}

// PostDeletedPayload payload.
type PostDeletedPayload struct {
	PostID string `json:"post_id"`
}

// RoommateCreatedPayload payload.
type RoommateCreatedPayload struct {
	RoommateID string `json:"roommate_id"`
	Title      string `json:"title"`
	Region     string `json:"region"`
	Anonymous  bool   `json:"anonymous"`
}

// TradeInitiatedPayload payload.
type TradeInitiatedPayload struct {
	TradeID    string `json:"trade_id"`
	PostID     string `json:"post_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}
