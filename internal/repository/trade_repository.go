package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// TradeRepository encapsulates trade persistence.
type TradeRepository interface {
	Create(ctx context.Context, trade *domain.Trade) error
	GetByID(ctx context.Context, id string) (*domain.Trade, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Trade, error)
}

type tradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository instantiates repository.
func NewTradeRepository(pool *pgxpool.Pool) TradeRepository {
	return &tradeRepository{pool: pool}
}

const tradeColumns = `id, post_id, sender_id, receiver_id, exchange_type, status, categories, time_initiated, time_completed`

func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
        INSERT INTO trades (post_id, sender_id, receiver_id, exchange_type, status, categories)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, time_initiated`
	return r.pool.QueryRow(ctx, query,
		trade.PostID,
		trade.SenderID,
		trade.ReceiverID,
		trade.ExchangeType,
		trade.Status,
		trade.Categories,
	).Scan(&trade.ID, &trade.TimeInitiated)
}

func (r *tradeRepository) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE id=$1`
	var trade domain.Trade
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&trade.ID,
		&trade.PostID,
		&trade.SenderID,
		&trade.ReceiverID,
		&trade.ExchangeType,
		&trade.Status,
		&trade.Categories,
		&trade.TimeInitiated,
		&trade.TimeCompleted,
	); err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades
        WHERE sender_id=$1 OR receiver_id=$1
        ORDER BY time_initiated DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		var trade domain.Trade
		if err := rows.Scan(
			&trade.ID,
			&trade.PostID,
			&trade.SenderID,
			&trade.ReceiverID,
			&trade.ExchangeType,
			&trade.Status,
			&trade.Categories,
			&trade.TimeInitiated,
			&trade.TimeCompleted,
		); err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}
