package models

import "time"

// Candle is one OHLC bar of a time series. Time and OriginalTime are epoch
// seconds for charting libraries that need a numeric axis; OriginalTime is
// captured once at creation and survives later amendments of the bar.
type Candle struct {
	Timestamp    time.Time `json:"timestamp"`
	Time         int64     `json:"time"`
	OriginalTime int64     `json:"originalTime"`
	Open         float64   `json:"open"`
	High         float64   `json:"high"`
	Low          float64   `json:"low"`
	Close        float64   `json:"close"`
}

// Tick is one synthetic price movement produced by the generator.
type Tick struct {
	Close float64
	High  float64
	Low   float64
}
