package repository

import (
	"context"
	"sort"
	"sync"

	"SimMarket/internal/domain/models"
	"SimMarket/internal/domain/repository"
)

// MemoryStockStore keeps stock records in process memory. It enforces the
// same versioned read-modify-write discipline as the Redis store, so the
// sweeps and tests exercise identical conflict semantics.
type MemoryStockStore struct {
	mu     sync.RWMutex
	stocks map[string]*models.Stock
}

func NewMemoryStockStore() *MemoryStockStore {
	return &MemoryStockStore{stocks: make(map[string]*models.Stock)}
}

func (s *MemoryStockStore) FindBySymbol(_ context.Context, symbol string) (*models.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stock, ok := s.stocks[symbol]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneStock(stock), nil
}

func (s *MemoryStockStore) Save(_ context.Context, stock *models.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stocks[stock.Symbol]
	if !ok {
		return repository.ErrNotFound
	}
	if current.Version != stock.Version {
		return repository.ErrConflict
	}

	saved := cloneStock(stock)
	saved.Version++
	s.stocks[stock.Symbol] = saved
	stock.Version = saved.Version
	return nil
}

func (s *MemoryStockStore) ListSymbols(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.stocks))
	for sym := range s.stocks {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (s *MemoryStockStore) Register(_ context.Context, stock *models.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stocks[stock.Symbol]; ok {
		return repository.ErrConflict
	}
	s.stocks[stock.Symbol] = cloneStock(stock)
	return nil
}

func (s *MemoryStockStore) Close() error { return nil }

func cloneStock(src *models.Stock) *models.Stock {
	dst := *src
	dst.DayTimeSeries = append([]models.Candle(nil), src.DayTimeSeries...)
	dst.TenMinTimeSeries = append([]models.Candle(nil), src.TenMinTimeSeries...)
	return &dst
}
