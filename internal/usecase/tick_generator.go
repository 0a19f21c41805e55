package usecase

import (
	"math"

	"SimMarket/internal/domain/models"
	"SimMarket/pkg/util"
)

// Rand is the source of randomness for the engine. *math/rand.Rand satisfies
// it; tests substitute a scripted sequence to pin bucket selection.
type Rand interface {
	Float64() float64
}

// Trend regime buckets: a uniform draw below trendFlatSplit keeps the price
// flat, below trendUpSplit biases it up, anything above biases it down.
const (
	trendFlatSplit = 0.33
	trendUpSplit   = 0.66
)

// Shape pattern buckets decide how high/low wicks are derived from the body.
// The 0.45-0.60 region intentionally repeats the upper-wick shape, giving it
// double weight.
const (
	shapeTightSplit     = 0.15
	shapeLowerWickSplit = 0.30
	shapeUpperWickSplit = 0.45
	shapeUpperWickSpan  = 0.60
)

// Wick magnitudes in price units.
const (
	narrowWickMax = 2.0
	wideWickMax   = 4.0
)

// GeneratorConfig bounds the per-tick change percentage. Setting MinChange
// equal to MaxChange collapses the range to a single magnitude.
type GeneratorConfig struct {
	MinChange   float64
	MaxChange   float64
	TrendChange float64
}

// TickGenerator fabricates one synthetic price movement per call.
type TickGenerator struct {
	cfg GeneratorConfig
	rnd Rand
}

func NewTickGenerator(cfg GeneratorConfig, rnd Rand) *TickGenerator {
	return &TickGenerator{cfg: cfg, rnd: rnd}
}

// Generate produces the next close plus an OHLC shape for the tick.
// Guarantee: high >= max(currentPrice, close) and low <= min(currentPrice,
// close) after rounding, whatever the drawn regime.
func (g *TickGenerator) Generate(currentPrice float64) models.Tick {
	trendType := g.rnd.Float64()
	var trendModifier float64
	switch {
	case trendType < trendFlatSplit:
		trendModifier = 0
	case trendType < trendUpSplit:
		trendModifier = g.cfg.TrendChange
	default:
		trendModifier = -g.cfg.TrendChange
	}

	changePercentage := g.rnd.Float64()*(g.cfg.MaxChange-g.cfg.MinChange) + g.cfg.MinChange + trendModifier
	close := util.Round2(currentPrice * (1 + changePercentage))

	bodyHigh := math.Max(currentPrice, close)
	bodyLow := math.Min(currentPrice, close)

	patternType := g.rnd.Float64()
	var high, low float64
	switch {
	case patternType < shapeTightSplit:
		high = bodyHigh
		low = bodyLow
	case patternType < shapeLowerWickSplit:
		high = bodyHigh
		low = bodyLow - g.rnd.Float64()*narrowWickMax
	case patternType < shapeUpperWickSplit:
		high = bodyHigh + g.rnd.Float64()*narrowWickMax
		low = bodyLow
	case patternType < shapeUpperWickSpan:
		high = bodyHigh + g.rnd.Float64()*narrowWickMax
		low = bodyLow
	default:
		if g.rnd.Float64() < 0.5 {
			high = close + g.rnd.Float64()*wideWickMax
			low = close - g.rnd.Float64()*narrowWickMax
		} else {
			high = close + g.rnd.Float64()*narrowWickMax
			low = close - g.rnd.Float64()*wideWickMax
		}
	}

	// The two-sided shapes anchor wicks on close alone; clamp so a wick can
	// never end up narrower than the body.
	high = math.Max(high, bodyHigh)
	low = math.Min(low, bodyLow)

	return models.Tick{
		Close: close,
		High:  util.Round2(high),
		Low:   util.Round2(low),
	}
}
