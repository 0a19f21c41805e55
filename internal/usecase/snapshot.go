package usecase

import (
	"context"
	"fmt"

	"SimMarket/internal/domain/models"
	domrepo "SimMarket/internal/domain/repository"
)

// SnapshotUseCase provides the read side consumed by the HTTP API and push
// subscribers: series-free snapshots plus candle history per timeframe.
type SnapshotUseCase struct {
	store domrepo.StockStore
}

func NewSnapshotUseCase(store domrepo.StockStore) *SnapshotUseCase {
	return &SnapshotUseCase{store: store}
}

func (uc *SnapshotUseCase) GetSnapshot(ctx context.Context, symbol string) (models.StockSnapshot, error) {
	if symbol == "" {
		return models.StockSnapshot{}, fmt.Errorf("symbol required")
	}
	stock, err := uc.store.FindBySymbol(ctx, symbol)
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	return stock.Snapshot(), nil
}

func (uc *SnapshotUseCase) ListSnapshots(ctx context.Context) ([]models.StockSnapshot, error) {
	symbols, err := uc.store.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	snaps := make([]models.StockSnapshot, 0, len(symbols))
	for _, sym := range symbols {
		stock, err := uc.store.FindBySymbol(ctx, sym)
		if err != nil {
			// A record deleted mid-iteration is not worth failing the list.
			continue
		}
		snaps = append(snaps, stock.Snapshot())
	}
	return snaps, nil
}

type GetCandlesParams struct {
	Symbol    string
	Timeframe domrepo.Timeframe
	Limit     int
}

type GetCandlesResult struct {
	Symbol    string          `json:"symbol"`
	Timeframe string          `json:"timeframe"`
	Count     int             `json:"count"`
	Candles   []models.Candle `json:"candles"`
}

func (uc *SnapshotUseCase) GetCandles(ctx context.Context, p GetCandlesParams) (*GetCandlesResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.Limit <= 0 || p.Limit > models.DaySeriesLimit {
		p.Limit = models.DaySeriesLimit
	}

	stock, err := uc.store.FindBySymbol(ctx, p.Symbol)
	if err != nil {
		return nil, fmt.Errorf("get candles: %w", err)
	}

	var candles []models.Candle
	switch p.Timeframe {
	case domrepo.TF10m:
		candles = stock.TenMinTimeSeries
	default:
		candles = stock.DayTimeSeries
	}
	if len(candles) > p.Limit {
		candles = candles[len(candles)-p.Limit:]
	}

	return &GetCandlesResult{
		Symbol:    stock.Symbol,
		Timeframe: string(p.Timeframe),
		Count:     len(candles),
		Candles:   candles,
	}, nil
}

// RegisterParams carries a new stock registration.
type RegisterParams struct {
	Symbol             string
	CompanyName        string
	IconURL            string
	CurrentPrice       float64
	LastDayTradedPrice float64
}

func (uc *SnapshotUseCase) RegisterStock(ctx context.Context, p RegisterParams) (models.StockSnapshot, error) {
	stock := &models.Stock{
		Symbol:             p.Symbol,
		CompanyName:        p.CompanyName,
		IconURL:            p.IconURL,
		CurrentPrice:       p.CurrentPrice,
		LastDayTradedPrice: p.LastDayTradedPrice,
		DayTimeSeries:      []models.Candle{},
		TenMinTimeSeries:   []models.Candle{},
	}
	if err := uc.store.Register(ctx, stock); err != nil {
		return models.StockSnapshot{}, fmt.Errorf("register stock: %w", err)
	}
	return stock.Snapshot(), nil
}
