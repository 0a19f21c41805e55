package usecase

import (
	"context"
	"errors"
	"testing"

	"SimMarket/internal/domain/models"
	domrepo "SimMarket/internal/domain/repository"
	internalrepo "SimMarket/internal/repository"
)

func TestRegisterAndGetSnapshot(t *testing.T) {
	ctx := context.Background()
	uc := NewSnapshotUseCase(internalrepo.NewMemoryStockStore())

	snap, err := uc.RegisterStock(ctx, RegisterParams{
		Symbol:             "AAPL",
		CompanyName:        "Apple Inc",
		IconURL:            "https://example.com/aapl.png",
		CurrentPrice:       180,
		LastDayTradedPrice: 178,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if snap.Symbol != "AAPL" || snap.CurrentPrice != 180 {
		t.Fatalf("snapshot = %+v", snap)
	}

	got, err := uc.GetSnapshot(ctx, "AAPL")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastDayTradedPrice != 178 {
		t.Errorf("lastDayTradedPrice = %v, want 178", got.LastDayTradedPrice)
	}

	if _, err := uc.GetSnapshot(ctx, "NOPE"); !errors.Is(err, domrepo.ErrNotFound) {
		t.Errorf("missing symbol = %v, want ErrNotFound", err)
	}

	if _, err := uc.RegisterStock(ctx, RegisterParams{Symbol: "AAPL"}); !errors.Is(err, domrepo.ErrConflict) {
		t.Errorf("duplicate register = %v, want ErrConflict", err)
	}
}

func TestListSnapshots(t *testing.T) {
	ctx := context.Background()
	uc := NewSnapshotUseCase(internalrepo.NewMemoryStockStore())

	for _, sym := range []string{"MSFT", "AAPL"} {
		if _, err := uc.RegisterStock(ctx, RegisterParams{Symbol: sym, CurrentPrice: 1}); err != nil {
			t.Fatalf("register %s: %v", sym, err)
		}
	}

	snaps, err := uc.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len = %d, want 2", len(snaps))
	}
	if snaps[0].Symbol != "AAPL" || snaps[1].Symbol != "MSFT" {
		t.Errorf("order = [%s %s], want sorted [AAPL MSFT]", snaps[0].Symbol, snaps[1].Symbol)
	}
}

func TestGetCandlesSelectsTimeframe(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	uc := NewSnapshotUseCase(store)

	day := []models.Candle{{Close: 1}, {Close: 2}, {Close: 3}}
	tenMin := []models.Candle{{Close: 10}}
	if err := store.Register(ctx, &models.Stock{
		Symbol:           "AAPL",
		DayTimeSeries:    day,
		TenMinTimeSeries: tenMin,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := uc.GetCandles(ctx, GetCandlesParams{Symbol: "AAPL", Timeframe: domrepo.TF1m})
	if err != nil {
		t.Fatalf("1m: %v", err)
	}
	if res.Count != 3 || res.Candles[2].Close != 3 {
		t.Errorf("1m result = %+v", res)
	}

	res, err = uc.GetCandles(ctx, GetCandlesParams{Symbol: "AAPL", Timeframe: domrepo.TF10m})
	if err != nil {
		t.Fatalf("10m: %v", err)
	}
	if res.Count != 1 || res.Candles[0].Close != 10 {
		t.Errorf("10m result = %+v", res)
	}
}

func TestGetCandlesLimitsTail(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	uc := NewSnapshotUseCase(store)

	day := make([]models.Candle, 5)
	for i := range day {
		day[i] = models.Candle{Close: float64(i + 1)}
	}
	if err := store.Register(ctx, &models.Stock{Symbol: "AAPL", DayTimeSeries: day}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := uc.GetCandles(ctx, GetCandlesParams{Symbol: "AAPL", Timeframe: domrepo.TF1m, Limit: 2})
	if err != nil {
		t.Fatalf("get candles: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	if res.Candles[0].Close != 4 || res.Candles[1].Close != 5 {
		t.Errorf("tail = %+v, want the two most recent", res.Candles)
	}
}
