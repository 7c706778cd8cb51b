package domain

import "time"

// TradeStatus enumerates trade lifecycle states.
type TradeStatus string

const (
	TradeStatusOngoing   TradeStatus = "ongoing"
	TradeStatusCompleted TradeStatus = "completed"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// Trade links a post to a sending and receiving user.
type Trade struct {
	ID            string
	PostID        string
	SenderID      string
	ReceiverID    string
	ExchangeType  string
	Status        TradeStatus
	Categories    []string
	TimeInitiated time.Time
	TimeCompleted *time.Time
}
