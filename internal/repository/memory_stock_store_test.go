package repository

import (
	"context"
	"errors"
	"testing"

	"SimMarket/internal/domain/models"
	"SimMarket/internal/domain/repository"
)

func TestMemoryStoreRegisterAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStockStore()

	err := store.Register(ctx, &models.Stock{Symbol: "AAPL", CurrentPrice: 100})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := store.Register(ctx, &models.Stock{Symbol: "AAPL"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("duplicate register = %v, want ErrConflict", err)
	}

	stock, err := store.FindBySymbol(ctx, "AAPL")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stock.CurrentPrice != 100 {
		t.Errorf("price = %v, want 100", stock.CurrentPrice)
	}

	if _, err := store.FindBySymbol(ctx, "NOPE"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing symbol = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveDetectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStockStore()
	if err := store.Register(ctx, &models.Stock{Symbol: "AAPL", CurrentPrice: 100}); err != nil {
		t.Fatalf("register: %v", err)
	}

	a, _ := store.FindBySymbol(ctx, "AAPL")
	b, _ := store.FindBySymbol(ctx, "AAPL")

	a.CurrentPrice = 101
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("first save: %v", err)
	}

	b.CurrentPrice = 99
	if err := store.Save(ctx, b); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("stale save = %v, want ErrConflict", err)
	}

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	if stock.CurrentPrice != 101 {
		t.Errorf("price = %v, want the first writer's 101", stock.CurrentPrice)
	}
}

func TestMemoryStoreSaveBumpsCallerVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStockStore()
	if err := store.Register(ctx, &models.Stock{Symbol: "AAPL"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	for i := 0; i < 3; i++ {
		stock.CurrentPrice++
		if err := store.Save(ctx, stock); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStockStore()
	if err := store.Register(ctx, &models.Stock{
		Symbol:        "AAPL",
		DayTimeSeries: []models.Candle{{Close: 100}},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	stock.DayTimeSeries[0].Close = 999

	fresh, _ := store.FindBySymbol(ctx, "AAPL")
	if fresh.DayTimeSeries[0].Close != 100 {
		t.Errorf("stored series mutated through a returned copy")
	}
}

func TestMemoryStoreListSymbolsSorted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStockStore()
	for _, sym := range []string{"MSFT", "AAPL", "GOOG"} {
		if err := store.Register(ctx, &models.Stock{Symbol: sym}); err != nil {
			t.Fatalf("register %s: %v", sym, err)
		}
	}

	symbols, err := store.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Fatalf("symbols = %v, want %v", symbols, want)
		}
	}
}
