package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SimMarket/internal/domain/models"
	"SimMarket/internal/domain/repository"
	"SimMarket/internal/market"
	applogger "SimMarket/pkg/logger"
)

// Sweeper runs the scheduled passes over every known stock: the 5-second
// generation tick, the 10-minute rollup sample, and the daily series reset.
// A failure for one stock never aborts the sweep for the rest.
type Sweeper struct {
	store   repository.StockStore
	gen     *TickGenerator
	rnd     Rand
	pub     repository.TickPublisher // optional
	archive repository.CandleArchive // optional
	metrics repository.Metrics
	cal     *market.Calendar
	logger  *applogger.Logger

	// gateGeneration pauses generation and rollup outside trading hours.
	// Off by default: the engine generates around the clock.
	gateGeneration bool

	nowFn func() time.Time
}

func NewSweeper(
	store repository.StockStore,
	gen *TickGenerator,
	rnd Rand,
	pub repository.TickPublisher,
	archive repository.CandleArchive,
	metrics repository.Metrics,
	cal *market.Calendar,
	logger *applogger.Logger,
	gateGeneration bool,
) *Sweeper {
	return &Sweeper{
		store:          store,
		gen:            gen,
		rnd:            rnd,
		pub:            pub,
		archive:        archive,
		metrics:        metrics,
		cal:            cal,
		logger:         logger,
		gateGeneration: gateGeneration,
		nowFn:          time.Now,
	}
}

// TickSweep generates one synthetic tick per stock and folds it into the
// intraday series.
func (s *Sweeper) TickSweep(ctx context.Context) {
	if s.gateGeneration && !s.cal.IsTradingAt(s.nowFn()) {
		return
	}

	start := time.Now()
	symbols, err := s.store.ListSymbols(ctx)
	if err != nil {
		s.metrics.RecordError("list_symbols")
		s.logger.Error("tick sweep: list symbols", applogger.Error(err))
		return
	}

	for _, sym := range symbols {
		if err := s.tickOne(ctx, sym); err != nil {
			s.metrics.RecordError("tick")
			s.logger.Error("tick sweep: stock skipped",
				applogger.String("symbol", sym),
				applogger.Error(err),
			)
		}
	}
	s.metrics.RecordSweepDuration("tick", time.Since(start).Seconds())
}

func (s *Sweeper) tickOne(ctx context.Context, symbol string) error {
	stock, err := s.store.FindBySymbol(ctx, symbol)
	if err != nil {
		return fmt.Errorf("find %s: %w", symbol, err)
	}

	now := s.nowFn()
	tick := s.gen.Generate(stock.CurrentPrice)
	stock.DayTimeSeries = FoldTick(stock.DayTimeSeries, tick, stock.CurrentPrice, now, s.rnd)
	stock.CurrentPrice = tick.Close

	if err := s.store.Save(ctx, stock); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost update is tolerated; the next tick re-reads fresh state.
			s.logger.Warn("skipping conflict", applogger.String("symbol", symbol))
			return nil
		}
		return fmt.Errorf("save %s: %w", symbol, err)
	}

	s.metrics.RecordTick(symbol)
	s.metrics.RecordLastPrice(symbol, stock.CurrentPrice)
	s.metrics.RecordSeriesLength(symbol, len(stock.DayTimeSeries))

	if s.pub != nil {
		if err := s.pub.PublishTick(ctx, stock.Snapshot()); err != nil {
			s.metrics.RecordError("publish")
			s.logger.Warn("tick publish failed",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}
	return nil
}

// RollupSweep samples the intraday tail of every stock into the 10-minute
// series.
func (s *Sweeper) RollupSweep(ctx context.Context) {
	if s.gateGeneration && !s.cal.IsTradingAt(s.nowFn()) {
		return
	}

	start := time.Now()
	symbols, err := s.store.ListSymbols(ctx)
	if err != nil {
		s.metrics.RecordError("list_symbols")
		s.logger.Error("rollup sweep: list symbols", applogger.Error(err))
		return
	}

	for _, sym := range symbols {
		if err := s.rollupOne(ctx, sym); err != nil {
			s.metrics.RecordError("rollup")
			s.logger.Error("rollup sweep: stock skipped",
				applogger.String("symbol", sym),
				applogger.Error(err),
			)
		}
	}
	s.metrics.RecordSweepDuration("rollup", time.Since(start).Seconds())
}

func (s *Sweeper) rollupOne(ctx context.Context, symbol string) error {
	stock, err := s.store.FindBySymbol(ctx, symbol)
	if err != nil {
		return fmt.Errorf("find %s: %w", symbol, err)
	}
	if len(stock.DayTimeSeries) == 0 {
		// Nothing generated yet today; no sample to take.
		return nil
	}

	dayLast := stock.DayTimeSeries[len(stock.DayTimeSeries)-1]
	stock.TenMinTimeSeries = SampleRollup(stock.TenMinTimeSeries, dayLast, stock.CurrentPrice, s.nowFn())

	if err := s.store.Save(ctx, stock); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Warn("skipping conflict", applogger.String("symbol", symbol))
			return nil
		}
		return fmt.Errorf("save %s: %w", symbol, err)
	}

	if s.archive != nil {
		sample := stock.TenMinTimeSeries[len(stock.TenMinTimeSeries)-1]
		if err := s.archive.Archive(ctx, symbol, sample); err != nil {
			s.metrics.RecordError("archive")
			s.logger.Warn("rollup archive failed",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}
	return nil
}

// DailyReset clears both series for every stock and rolls the last traded
// price forward. The current price is left untouched.
func (s *Sweeper) DailyReset(ctx context.Context) {
	symbols, err := s.store.ListSymbols(ctx)
	if err != nil {
		s.metrics.RecordError("list_symbols")
		s.logger.Error("daily reset: list symbols", applogger.Error(err))
		return
	}

	for _, sym := range symbols {
		if err := s.resetOne(ctx, sym); err != nil {
			s.metrics.RecordError("reset")
			s.logger.Error("daily reset: stock skipped",
				applogger.String("symbol", sym),
				applogger.Error(err),
			)
		}
	}
	s.logger.Info("daily reset complete", applogger.Int("stocks", len(symbols)))
}

func (s *Sweeper) resetOne(ctx context.Context, symbol string) error {
	stock, err := s.store.FindBySymbol(ctx, symbol)
	if err != nil {
		return fmt.Errorf("find %s: %w", symbol, err)
	}

	stock.DayTimeSeries = []models.Candle{}
	stock.TenMinTimeSeries = []models.Candle{}
	stock.LastDayTradedPrice = stock.CurrentPrice

	if err := s.store.Save(ctx, stock); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Warn("skipping conflict", applogger.String("symbol", symbol))
			return nil
		}
		return fmt.Errorf("save %s: %w", symbol, err)
	}
	return nil
}
