package models

// DaySeriesLimit bounds the intraday series to one trading day of 1-minute
// bars (6.5 hours x 60).
const DaySeriesLimit = 390

// Stock is the persistent record mutated by the generation and rollup sweeps.
type Stock struct {
	Symbol             string   `json:"symbol"`
	CompanyName        string   `json:"companyName"`
	IconURL            string   `json:"iconUrl"`
	CurrentPrice       float64  `json:"currentPrice"`
	LastDayTradedPrice float64  `json:"lastDayTradedPrice"`
	DayTimeSeries      []Candle `json:"dayTimeSeries"`
	TenMinTimeSeries   []Candle `json:"tenMinTimeSeries"`

	// Version guards read-modify-write cycles in the store.
	Version int64 `json:"version"`
}

// StockSnapshot is the series-free view served to API and push subscribers.
type StockSnapshot struct {
	Symbol             string  `json:"symbol"`
	CompanyName        string  `json:"companyName"`
	IconURL            string  `json:"iconUrl"`
	CurrentPrice       float64 `json:"currentPrice"`
	LastDayTradedPrice float64 `json:"lastDayTradedPrice"`
}

// Snapshot strips both time series from the record.
func (s *Stock) Snapshot() StockSnapshot {
	return StockSnapshot{
		Symbol:             s.Symbol,
		CompanyName:        s.CompanyName,
		IconURL:            s.IconURL,
		CurrentPrice:       s.CurrentPrice,
		LastDayTradedPrice: s.LastDayTradedPrice,
	}
}
