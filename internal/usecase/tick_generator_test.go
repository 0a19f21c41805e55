package usecase

import (
	"math/rand"
	"testing"
)

// scriptedRand replays a fixed draw sequence so tests can pin the trend and
// shape buckets the generator lands in.
type scriptedRand struct {
	vals []float64
	i    int
}

func (s *scriptedRand) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func TestGenerateFlatTightBody(t *testing.T) {
	// trend draw 0.1 -> flat, change draw irrelevant with a collapsed range,
	// shape draw 0.1 -> tight candle.
	rnd := &scriptedRand{vals: []float64{0.1, 0.5, 0.1}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: 0, MaxChange: 0, TrendChange: 0.005}, rnd)

	tick := gen.Generate(100)

	if tick.Close != 100 {
		t.Fatalf("close = %v, want 100", tick.Close)
	}
	if tick.High != 100 || tick.Low != 100 {
		t.Fatalf("tight candle got high=%v low=%v, want both 100", tick.High, tick.Low)
	}
}

func TestGenerateUpTrend(t *testing.T) {
	// trend draw 0.5 -> up bias; collapsed range leaves only the trend term.
	rnd := &scriptedRand{vals: []float64{0.5, 0.5, 0.1}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: 0, MaxChange: 0, TrendChange: 0.005}, rnd)

	tick := gen.Generate(100)

	if tick.Close != 100.5 {
		t.Fatalf("close = %v, want 100.5", tick.Close)
	}
}

func TestGenerateDownTrend(t *testing.T) {
	rnd := &scriptedRand{vals: []float64{0.9, 0.5, 0.1}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: 0, MaxChange: 0, TrendChange: 0.005}, rnd)

	tick := gen.Generate(100)

	if tick.Close != 99.5 {
		t.Fatalf("close = %v, want 99.5", tick.Close)
	}
}

func TestGenerateUpperWick(t *testing.T) {
	// shape draw 0.35 -> upper wick, wick draw 0.5 scales narrowWickMax.
	rnd := &scriptedRand{vals: []float64{0.1, 0.5, 0.35, 0.5}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: 0, MaxChange: 0}, rnd)

	tick := gen.Generate(100)

	if tick.High != 101 {
		t.Fatalf("high = %v, want 101", tick.High)
	}
	if tick.Low != 100 {
		t.Fatalf("low = %v, want 100", tick.Low)
	}
}

func TestGenerateLowerWick(t *testing.T) {
	rnd := &scriptedRand{vals: []float64{0.1, 0.5, 0.2, 0.5}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: 0, MaxChange: 0}, rnd)

	tick := gen.Generate(100)

	if tick.High != 100 {
		t.Fatalf("high = %v, want 100", tick.High)
	}
	if tick.Low != 99 {
		t.Fatalf("low = %v, want 99", tick.Low)
	}
}

func TestGenerateTwoSidedClampsToBody(t *testing.T) {
	// A fixed -10% move with a two-sided shape anchored on close: the zero
	// wick draws would leave high below the previous price without the clamp.
	rnd := &scriptedRand{vals: []float64{0.1, 0.5, 0.9, 0.4, 0, 0}}
	gen := NewTickGenerator(GeneratorConfig{MinChange: -0.10, MaxChange: -0.10}, rnd)

	tick := gen.Generate(100)

	if tick.Close != 90 {
		t.Fatalf("close = %v, want 90", tick.Close)
	}
	if tick.High != 100 {
		t.Fatalf("high = %v, want 100 (clamped to previous price)", tick.High)
	}
	if tick.Low != 90 {
		t.Fatalf("low = %v, want 90", tick.Low)
	}
}

func TestGenerateInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	gen := NewTickGenerator(GeneratorConfig{MinChange: -0.20, MaxChange: 0.20, TrendChange: 0.005}, rnd)

	const price = 250.0
	for i := 0; i < 2000; i++ {
		tick := gen.Generate(price)

		if tick.High < tick.Close || tick.High < price {
			t.Fatalf("iter %d: high %v below body (close=%v prev=%v)", i, tick.High, tick.Close, price)
		}
		if tick.Low > tick.Close || tick.Low > price {
			t.Fatalf("iter %d: low %v above body (close=%v prev=%v)", i, tick.Low, tick.Close, price)
		}
		if tick.Close < price*0.75 || tick.Close > price*1.25 {
			t.Fatalf("iter %d: close %v outside the configured change range", i, tick.Close)
		}
	}
}
