package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/events"
	"github.com/campus-market/marketplace-service/internal/repository"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// TradeService coordinates trade initiation. Status transitions beyond the
// initial "ongoing" state are out of scope.
type TradeService struct {
	trades     repository.TradeRepository
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// TradeDependencies bundles repositories for the trade service.
type TradeDependencies struct {
	TradeRepo  repository.TradeRepository
	PostRepo   repository.PostRepository
	Dispatcher events.Dispatcher
}

// NewTradeService builds the service.
func NewTradeService(deps TradeDependencies) *TradeService {
	return &TradeService{
		trades:     deps.TradeRepo,
		posts:      deps.PostRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TradeCreateInput describes a trade initiation payload.
type TradeCreateInput struct {
	PostID       string
	ExchangeType string
}

// InitiateTrade opens a trade for a post. The post's author becomes the
// receiver; trading on your own post is rejected.
func (s *TradeService) InitiateTrade(ctx context.Context, senderID string, input TradeCreateInput) (*domain.Trade, error) {
	post, err := s.posts.GetByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post", nil)
		}
		return nil, err
	}
	if post.AuthorID == "" {
		return nil, apperrors.NewValidationError("Post has no author to trade with", nil)
	}
	if post.AuthorID == senderID {
		return nil, apperrors.NewValidationError("Cannot initiate a trade on your own post", nil)
	}

	exchangeType := input.ExchangeType
	if exchangeType == "" {
		exchangeType = post.ExchangeType
	}

	trade := &domain.Trade{
		PostID:       post.ID,
		SenderID:     senderID,
		ReceiverID:   post.AuthorID,
		ExchangeType: exchangeType,
		Status:       domain.TradeStatusOngoing,
		Categories:   post.Categories,
	}
	if err := s.trades.Create(ctx, trade); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTradeInitiated,
			ActorID:   senderID,
			Timestamp: time.Now(),
			Payload: events.TradeInitiatedPayload{
				TradeID:    trade.ID,
				PostID:     trade.PostID,
				SenderID:   trade.SenderID,
				ReceiverID: trade.ReceiverID,
			},
		})
	}
	return trade, nil
}

// ListUserTrades returns trades where the user is sender or receiver.
func (s *TradeService) ListUserTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	return s.trades.ListByUser(ctx, userID)
}
