package usecase

import (
	"context"
	"testing"
	"time"

	"SimMarket/internal/domain/models"
	domrepo "SimMarket/internal/domain/repository"
	"SimMarket/internal/market"
	internalrepo "SimMarket/internal/repository"
	applogger "SimMarket/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordTick(string)                   {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordLastPrice(string, float64)     {}
func (nopMetrics) RecordSweepDuration(string, float64) {}
func (nopMetrics) RecordSeriesLength(string, int)      {}

type capturePublisher struct {
	snaps []models.StockSnapshot
}

func (p *capturePublisher) PublishTick(_ context.Context, snap models.StockSnapshot) error {
	p.snaps = append(p.snaps, snap)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type captureArchive struct {
	symbols []string
	candles []models.Candle
}

func (a *captureArchive) Archive(_ context.Context, symbol string, c models.Candle) error {
	a.symbols = append(a.symbols, symbol)
	a.candles = append(a.candles, c)
	return nil
}

func (a *captureArchive) Close() error { return nil }

// conflictOnSave rejects writes for one symbol with a version conflict.
type conflictOnSave struct {
	domrepo.StockStore
	bad string
}

func (s *conflictOnSave) Save(ctx context.Context, stock *models.Stock) error {
	if stock.Symbol == s.bad {
		return domrepo.ErrConflict
	}
	return s.StockStore.Save(ctx, stock)
}

func testSweeper(t *testing.T, store domrepo.StockStore, pub domrepo.TickPublisher, archive domrepo.CandleArchive) *Sweeper {
	t.Helper()

	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cal, err := market.NewCalendar("09:30", "15:30", nil)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	gen := NewTickGenerator(GeneratorConfig{MinChange: -0.01, MaxChange: 0.01, TrendChange: 0.005}, zeroRand{})
	return NewSweeper(store, gen, zeroRand{}, pub, archive, nopMetrics{}, cal, logger, false)
}

func seedStock(t *testing.T, store domrepo.StockStore, symbol string, price float64) {
	t.Helper()
	err := store.Register(context.Background(), &models.Stock{
		Symbol:             symbol,
		CompanyName:        symbol + " Inc",
		CurrentPrice:       price,
		LastDayTradedPrice: price,
	})
	if err != nil {
		t.Fatalf("register %s: %v", symbol, err)
	}
}

func TestTickSweepUpdatesAllStocks(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	seedStock(t, store, "AAPL", 100)
	seedStock(t, store, "MSFT", 200)

	pub := &capturePublisher{}
	s := testSweeper(t, store, pub, nil)

	s.TickSweep(ctx)

	for _, sym := range []string{"AAPL", "MSFT"} {
		stock, err := store.FindBySymbol(ctx, sym)
		if err != nil {
			t.Fatalf("find %s: %v", sym, err)
		}
		if len(stock.DayTimeSeries) != 1 {
			t.Fatalf("%s day series len = %d, want 1", sym, len(stock.DayTimeSeries))
		}
		if stock.CurrentPrice != stock.DayTimeSeries[0].Close {
			t.Errorf("%s current price %v != candle close %v", sym, stock.CurrentPrice, stock.DayTimeSeries[0].Close)
		}
	}
	if len(pub.snaps) != 2 {
		t.Errorf("published %d snapshots, want 2", len(pub.snaps))
	}
}

func TestTickSweepSkipsConflictedStock(t *testing.T) {
	ctx := context.Background()
	mem := internalrepo.NewMemoryStockStore()
	seedStock(t, mem, "BAD", 100)
	seedStock(t, mem, "GOOD", 100)

	s := testSweeper(t, &conflictOnSave{StockStore: mem, bad: "BAD"}, nil, nil)
	s.TickSweep(ctx)

	bad, _ := mem.FindBySymbol(ctx, "BAD")
	if len(bad.DayTimeSeries) != 0 {
		t.Errorf("conflicted stock was written: %d candles", len(bad.DayTimeSeries))
	}
	good, _ := mem.FindBySymbol(ctx, "GOOD")
	if len(good.DayTimeSeries) != 1 {
		t.Errorf("healthy stock not swept: %d candles", len(good.DayTimeSeries))
	}
}

func TestTickSweepGatedOutsideTradingHours(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	seedStock(t, store, "AAPL", 100)

	logger, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	cal, _ := market.NewCalendar("09:30", "15:30", nil)
	gen := NewTickGenerator(GeneratorConfig{}, zeroRand{})
	s := NewSweeper(store, gen, zeroRand{}, nil, nil, nopMetrics{}, cal, logger, true)
	s.nowFn = func() time.Time {
		return time.Date(2025, 8, 24, 12, 0, 0, 0, time.UTC) // Sunday
	}

	s.TickSweep(ctx)

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	if len(stock.DayTimeSeries) != 0 {
		t.Errorf("gated sweep still generated %d candles", len(stock.DayTimeSeries))
	}
}

func TestRollupSweepSkipsEmptyDaySeries(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	seedStock(t, store, "AAPL", 100)

	s := testSweeper(t, store, nil, nil)
	s.RollupSweep(ctx)

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	if len(stock.TenMinTimeSeries) != 0 {
		t.Errorf("rollup sampled an empty day: %d entries", len(stock.TenMinTimeSeries))
	}
}

func TestRollupSweepSamplesAndArchives(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	seedStock(t, store, "AAPL", 100)

	archive := &captureArchive{}
	s := testSweeper(t, store, nil, archive)

	s.TickSweep(ctx)
	s.RollupSweep(ctx)

	stock, _ := store.FindBySymbol(ctx, "AAPL")
	if len(stock.TenMinTimeSeries) != 1 {
		t.Fatalf("ten-minute series len = %d, want 1", len(stock.TenMinTimeSeries))
	}
	sample := stock.TenMinTimeSeries[0]
	dayLast := stock.DayTimeSeries[len(stock.DayTimeSeries)-1]
	if sample.Close != dayLast.Close {
		t.Errorf("sample close %v != intraday tail close %v", sample.Close, dayLast.Close)
	}

	if len(archive.symbols) != 1 || archive.symbols[0] != "AAPL" {
		t.Fatalf("archive calls = %v, want [AAPL]", archive.symbols)
	}
	if archive.candles[0] != sample {
		t.Errorf("archived candle %+v != stored sample %+v", archive.candles[0], sample)
	}
}

func TestDailyResetClearsSeries(t *testing.T) {
	ctx := context.Background()
	store := internalrepo.NewMemoryStockStore()
	seedStock(t, store, "AAPL", 100)

	s := testSweeper(t, store, nil, nil)
	s.TickSweep(ctx)
	s.RollupSweep(ctx)

	before, _ := store.FindBySymbol(ctx, "AAPL")
	s.DailyReset(ctx)

	after, _ := store.FindBySymbol(ctx, "AAPL")
	if len(after.DayTimeSeries) != 0 || len(after.TenMinTimeSeries) != 0 {
		t.Errorf("series not cleared: day=%d tenMin=%d", len(after.DayTimeSeries), len(after.TenMinTimeSeries))
	}
	if after.CurrentPrice != before.CurrentPrice {
		t.Errorf("current price changed across reset: %v -> %v", before.CurrentPrice, after.CurrentPrice)
	}
	if after.LastDayTradedPrice != before.CurrentPrice {
		t.Errorf("last traded price = %v, want rolled forward to %v", after.LastDayTradedPrice, before.CurrentPrice)
	}
}
