package usecase

import (
	"math"
	"time"

	"SimMarket/internal/domain/models"
	"SimMarket/pkg/util"
)

// candleWindow is how long an intraday candle stays open for amendment.
const candleWindow = time.Minute

// amendJitterMax widens high/low slightly on each in-window merge, mimicking
// intrabar discovery.
const amendJitterMax = 1.0

// FoldTick merges one tick into the intraday series: a new minute appends a
// candle, a tick inside the open minute amends the tail in place. The series
// is truncated to the most recent DaySeriesLimit entries.
func FoldTick(series []models.Candle, tick models.Tick, currentPrice float64, now time.Time, rnd Rand) []models.Candle {
	if len(series) == 0 || now.Sub(series[len(series)-1].Timestamp) > candleWindow {
		series = append(series, models.Candle{
			Timestamp:    now,
			Time:         now.Unix(),
			OriginalTime: now.Unix(),
			Open:         util.Round2(currentPrice),
			High:         tick.High,
			Low:          tick.Low,
			Close:        tick.Close,
		})
	} else {
		last := &series[len(series)-1]
		last.High = util.Round2(math.Max(last.High, tick.High+rnd.Float64()*amendJitterMax))
		last.Low = util.Round2(math.Min(last.Low, tick.Low-rnd.Float64()*amendJitterMax))
		last.Close = util.Round2(tick.Close)
		// Open, Timestamp, Time and OriginalTime carry over untouched.
	}

	if len(series) > models.DaySeriesLimit {
		series = series[len(series)-models.DaySeriesLimit:]
	}
	return series
}

// SampleRollup appends one coarse candle sampled from the intraday tail.
// Each invocation is an independent observation; rollup candles are never
// amended.
func SampleRollup(tenMin []models.Candle, dayLast models.Candle, currentPrice float64, now time.Time) []models.Candle {
	return append(tenMin, models.Candle{
		Timestamp:    now,
		Time:         now.Unix(),
		OriginalTime: now.Unix(),
		Open:         util.Round2(currentPrice),
		High:         util.Round2(dayLast.High),
		Low:          util.Round2(dayLast.Low),
		Close:        util.Round2(dayLast.Close),
	})
}
