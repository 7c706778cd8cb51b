package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-market/marketplace-service/internal/domain"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

type memTradeRepo struct {
	trades map[string]*domain.Trade
}

func newMemTradeRepo() *memTradeRepo {
	return &memTradeRepo{trades: map[string]*domain.Trade{}}
}

func (m *memTradeRepo) Create(_ context.Context, trade *domain.Trade) error {
	trade.ID = uuid.NewString()
	trade.TimeInitiated = time.Now()
	copied := *trade
	m.trades[trade.ID] = &copied
	return nil
}

func (m *memTradeRepo) GetByID(_ context.Context, id string) (*domain.Trade, error) {
	trade, ok := m.trades[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *trade
	return &copied, nil
}

func (m *memTradeRepo) ListByUser(_ context.Context, userID string) ([]domain.Trade, error) {
	out := make([]domain.Trade, 0)
	for _, trade := range m.trades {
		if trade.SenderID == userID || trade.ReceiverID == userID {
			out = append(out, *trade)
		}
	}
	return out, nil
}

func newTestTradeService(t *testing.T) (*TradeService, *memPostRepo, *memTradeRepo) {
	t.Helper()
	posts := newMemPostRepo()
	trades := newMemTradeRepo()
	svc := NewTradeService(TradeDependencies{TradeRepo: trades, PostRepo: posts})
	return svc, posts, trades
}

func seedPost(t *testing.T, posts *memPostRepo, authorID string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Title:        "Mini fridge",
		Description:  "Compact fridge, fits under a desk.",
		ExchangeType: "sell",
		Categories:   []string{"appliances"},
		Status:       domain.PostStatusAvailable,
		AuthorID:     authorID,
	}
	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func TestInitiateTrade(t *testing.T) {
	svc, posts, trades := newTestTradeService(t)
	post := seedPost(t, posts, "seller")

	trade, err := svc.InitiateTrade(context.Background(), "buyer", TradeCreateInput{PostID: post.ID})
	require.NoError(t, err)

	assert.Equal(t, post.ID, trade.PostID)
	assert.Equal(t, "buyer", trade.SenderID)
	assert.Equal(t, "seller", trade.ReceiverID)
	assert.Equal(t, domain.TradeStatusOngoing, trade.Status)
	assert.Equal(t, "sell", trade.ExchangeType)
	assert.Equal(t, []string{"appliances"}, trade.Categories)
	assert.Len(t, trades.trades, 1)
}

func TestInitiateTradeOwnPost(t *testing.T) {
	svc, posts, trades := newTestTradeService(t)
	post := seedPost(t, posts, "seller")

	_, err := svc.InitiateTrade(context.Background(), "seller", TradeCreateInput{PostID: post.ID})
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Cannot initiate a trade on your own post", domainErr.Message)
	assert.Empty(t, trades.trades)
}

func TestInitiateTradeMissingPost(t *testing.T) {
	svc, _, _ := newTestTradeService(t)

	_, err := svc.InitiateTrade(context.Background(), "buyer", TradeCreateInput{PostID: "missing"})
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestInitiateTradeAuthorlessPost(t *testing.T) {
	svc, posts, _ := newTestTradeService(t)
	post := seedPost(t, posts, "")

	_, err := svc.InitiateTrade(context.Background(), "buyer", TradeCreateInput{PostID: post.ID})
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestInitiateTradeExchangeTypeOverride(t *testing.T) {
	svc, posts, _ := newTestTradeService(t)
	post := seedPost(t, posts, "seller")

	trade, err := svc.InitiateTrade(context.Background(), "buyer", TradeCreateInput{
		PostID:       post.ID,
		ExchangeType: "trade",
	})
	require.NoError(t, err)
	assert.Equal(t, "trade", trade.ExchangeType)
}

func TestListUserTrades(t *testing.T) {
	svc, posts, _ := newTestTradeService(t)
	post := seedPost(t, posts, "seller")
	otherPost := seedPost(t, posts, "other-seller")

	_, err := svc.InitiateTrade(context.Background(), "buyer", TradeCreateInput{PostID: post.ID})
	require.NoError(t, err)
	_, err = svc.InitiateTrade(context.Background(), "someone-else", TradeCreateInput{PostID: otherPost.ID})
	require.NoError(t, err)

	mine, err := svc.ListUserTrades(context.Background(), "buyer")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	sellers, err := svc.ListUserTrades(context.Background(), "seller")
	require.NoError(t, err)
	assert.Len(t, sellers, 1)
}
