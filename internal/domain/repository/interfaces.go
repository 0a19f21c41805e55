package repository

import (
	"context"

	"SimMarket/internal/domain/models"
)

// StockStore is the persistence collaborator for stock records.
type StockStore interface {
	FindBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	Save(ctx context.Context, stock *models.Stock) error
	ListSymbols(ctx context.Context) ([]string, error)
	Register(ctx context.Context, stock *models.Stock) error
	Close() error
}

// CandleArchive persists rollup samples append-only for audit and charting.
type CandleArchive interface {
	Archive(ctx context.Context, symbol string, candle models.Candle) error
	Close() error
}

// TickPublisher fans generated snapshots out to the push-delivery backend.
type TickPublisher interface {
	PublishTick(ctx context.Context, snap models.StockSnapshot) error
	Close() error
}

type Metrics interface {
	RecordTick(symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordSweepDuration(sweep string, seconds float64)
	RecordSeriesLength(symbol string, n int)
}
