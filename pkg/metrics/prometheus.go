package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticksTotal    *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	sweepDuration *prometheus.HistogramVec
	seriesLength  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simmarket_ticks_generated_total",
				Help: "Total number of synthetic ticks generated",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simmarket_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simmarket_last_price",
				Help: "Last synthetic price for a symbol",
			},
			[]string{"symbol"},
		),
		sweepDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simmarket_sweep_duration_seconds",
				Help:    "Duration of scheduled sweeps in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sweep"},
		),
		seriesLength: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simmarket_day_series_length",
				Help: "Current number of intraday candles held for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordTick records one generated tick.
func (r *Recorder) RecordTick(symbol string) {
	r.ticksTotal.WithLabelValues(symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordSweepDuration records sweep latency in seconds.
func (r *Recorder) RecordSweepDuration(sweep string, seconds float64) {
	r.sweepDuration.WithLabelValues(sweep).Observe(seconds)
}

// RecordSeriesLength records the intraday series size for a symbol.
func (r *Recorder) RecordSeriesLength(symbol string, n int) {
	r.seriesLength.WithLabelValues(symbol).Set(float64(n))
}
