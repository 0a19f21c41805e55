package scheduler

import (
	"context"
	"testing"

	"SimMarket/internal/market"
	internalrepo "SimMarket/internal/repository"
	"SimMarket/internal/usecase"
	applogger "SimMarket/pkg/logger"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cal, err := market.NewCalendar("09:30", "15:30", nil)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	gen := usecase.NewTickGenerator(usecase.GeneratorConfig{}, fixedRand{})
	sweeper := usecase.NewSweeper(internalrepo.NewMemoryStockStore(), gen, fixedRand{}, nil, nil, noMetrics{}, cal, logger, false)

	return New(context.Background(), sweeper, logger)
}

type noMetrics struct{}

func (noMetrics) RecordTick(string)                   {}
func (noMetrics) RecordError(string)                  {}
func (noMetrics) RecordLastPrice(string, float64)     {}
func (noMetrics) RecordSweepDuration(string, float64) {}
func (noMetrics) RecordSeriesLength(string, int)      {}

func TestRegisterAllAcceptsDefaultSpecs(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.RegisterAll("*/5 * * * * *", "0 */10 * * * *", "0 0 6 * * *"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
}

func TestRegisterAllRejectsBadSpec(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.RegisterAll("not a cron", "0 */10 * * * *", "0 0 6 * * *"); err == nil {
		t.Fatal("invalid tick spec accepted")
	}
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.RegisterAll("*/5 * * * * *", "0 */10 * * * *", "0 0 6 * * *"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	s.Start()
	s.Stop()
}
