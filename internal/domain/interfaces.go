package domain

import "context"

// IndexQuote is a snapshot of a market index with its recent price series.
type IndexQuote struct {
	CurrentPrice  float64   `json:"current_price"`
	ChangePercent float64   `json:"change"`
	Prices        []float64 `json:"prices"`
}

// StockQuote is a point-in-time quote for a single symbol.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	ChangePercent float64 `json:"change"`
	Volume        int64   `json:"volume"`
}

// PricePoint is one day of historical price data.
type PricePoint struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockHistory holds a year of price history with derived return statistics,
// as consumed by the portfolio analyzer.
type StockHistory struct {
	Symbol       string    `json:"symbol"`
	Prices       []float64 `json:"prices"`
	Returns      []float64 `json:"returns"`
	CurrentPrice float64   `json:"current_price"`
	Volatility   float64   `json:"volatility"` // annualized
}

// MarketDataSource supplies index, sector, and price data. Implementations
// must degrade to deterministic synthetic data on fetch errors rather than
// surfacing failures: callers never receive an error for missing market data.
type MarketDataSource interface {
	// GetMarketOverview returns major index quotes keyed by index name.
	GetMarketOverview(ctx context.Context) map[string]IndexQuote

	// GetStockPrice returns the current quote for a symbol.
	GetStockPrice(ctx context.Context, symbol string) StockQuote

	// GetSectorPerformance returns one-month percentage change per sector.
	GetSectorPerformance(ctx context.Context) map[string]float64

	// GetHistoricalSeries returns daily price points for the lookback window.
	GetHistoricalSeries(ctx context.Context, symbol string, days int) []PricePoint

	// GetStockHistory returns a year of history with derived statistics.
	GetStockHistory(ctx context.Context, symbol string) *StockHistory
}

// AdviceProvider forwards a profile-aware query to a language model.
// Implementations return an apologetic message embedding the error detail on
// failure instead of an error: advice is best-effort, never fatal.
type AdviceProvider interface {
	GetAdvice(ctx context.Context, query string, profile *UserProfile) string
}
