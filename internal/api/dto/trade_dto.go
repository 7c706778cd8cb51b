package dto

import (
	"time"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// TradeCreateRequest payload for initiating a trade.
type TradeCreateRequest struct {
	PostID       string `json:"post_id"`
	ExchangeType string `json:"exchange_type"`
}

// TradeResponse is the wire representation of a trade.
type TradeResponse struct {
	ID            string     `json:"_id"`
	PostID        string     `json:"item_being_traded"`
	SenderID      string     `json:"sender_id"`
	ReceiverID    string     `json:"receiver_id"`
	ExchangeType  string     `json:"exchange_type"`
	Status        string     `json:"status"`
	Categories    []string   `json:"categories"`
	TimeInitiated time.Time  `json:"time_initiated"`
	TimeCompleted *time.Time `json:"time_completed,omitempty"`
}

// NewTradeResponse shapes a trade for the wire.
func NewTradeResponse(trade *domain.Trade) TradeResponse {
	return TradeResponse{
		ID:            trade.ID,
		PostID:        trade.PostID,
		SenderID:      trade.SenderID,
		ReceiverID:    trade.ReceiverID,
		ExchangeType:  trade.ExchangeType,
		Status:        string(trade.Status),
		Categories:    trade.Categories,
		TimeInitiated: trade.TimeInitiated,
		TimeCompleted: trade.TimeCompleted,
	}
}
