// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradelens/internal/models"
)

// TradeStore defines the interface for trade persistence.
type TradeStore interface {
	SaveTrade(ctx context.Context, trade *models.Trade) error
	SaveTrades(ctx context.Context, trades []models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
	CountTrades(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	Direction models.Direction
	StartDate time.Time
	EndDate   time.Time
	// Tag restricts to trades carrying the tag name, optionally with a
	// specific value as "name:value".
	Tag   string
	Limit int
}
