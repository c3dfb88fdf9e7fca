// Package marketdata provides market quotes, sector performance, and price
// history with a cache-first fetch strategy. Every lookup degrades through
// three levels: fresh cache, upstream API, stale cache, and finally a
// deterministic synthetic series, so callers always get data and never an
// error.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Cache lifetimes per data class. Quotes move fast, sector and bond data
// slowly, history barely at all.
const (
	ttlOverview = 15 * time.Minute
	ttlQuote    = 15 * time.Minute
	ttlSectors  = time.Hour
	ttlHistory  = 24 * time.Hour
	ttlCrypto   = 15 * time.Minute
	ttlBonds    = time.Hour
)

// majorIndices lists the tracked index symbols in presentation order.
var majorIndices = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "S&P 500"},
	{"^DJI", "Dow Jones"},
	{"^IXIC", "NASDAQ"},
	{"^RUT", "Russell 2000"},
}

// sectorETFs lists the SPDR sector funds in presentation order.
var sectorETFs = []struct {
	Symbol string
	Name   string
}{
	{"XLK", "Technology"},
	{"XLF", "Financial"},
	{"XLV", "Healthcare"},
	{"XLE", "Energy"},
	{"XLI", "Industrial"},
	{"XLY", "Consumer Discretionary"},
	{"XLP", "Consumer Staples"},
	{"XLU", "Utilities"},
	{"XLB", "Materials"},
	{"XLRE", "Real Estate"},
}

// cryptoAssets maps upstream pair symbols to display names.
var cryptoAssets = []struct {
	Symbol string
	Name   string
}{
	{"BTC-USD", "BTC"},
	{"ETH-USD", "ETH"},
	{"ADA-USD", "ADA"},
	{"DOT-USD", "DOT"},
}

// treasuries maps yield index symbols to maturity names.
var treasuries = []struct {
	Symbol string
	Name   string
}{
	{"^TNX", "10-Year Treasury"},
	{"^FVX", "5-Year Treasury"},
	{"^TYX", "30-Year Treasury"},
}

// CryptoQuote is a point-in-time cryptocurrency price.
type CryptoQuote struct {
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change"`
}

// BondYield is a treasury yield with its daily change in points.
type BondYield struct {
	Yield  float64 `json:"yield"`
	Change float64 `json:"change"`
}

// EconomicIndicator is one macro measure with interpretation guidance.
type EconomicIndicator struct {
	Current     float64 `json:"current"`
	Description string  `json:"description"`
	Impact      string  `json:"impact"`
}

// Client fetches market data over HTTP.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
	now       func() time.Time
}

// NewClient creates a new market data client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "marketdata").Logger(),
		cacheRepo: cacheRepo,
		now:       time.Now,
	}
}

// GetMarketOverview returns quotes for the four major indices, keyed by
// index name.
func (c *Client) GetMarketOverview(ctx context.Context) map[string]domain.IndexQuote {
	overview := make(map[string]domain.IndexQuote, len(majorIndices))
	for _, index := range majorIndices {
		overview[index.Name] = c.indexQuote(ctx, index.Symbol)
	}
	return overview
}

func (c *Client) indexQuote(ctx context.Context, symbol string) domain.IndexQuote {
	var quote domain.IndexQuote
	if c.fromCache(clientdata.NamespaceOverview, symbol, &quote) {
		return quote
	}

	points, err := c.fetchHistory(ctx, symbol, 30)
	if err == nil && len(points) > 1 {
		prices := closes(points)
		current := prices[len(prices)-1]
		prev := prices[len(prices)-2]
		quote = domain.IndexQuote{
			CurrentPrice:  current,
			ChangePercent: (current - prev) / prev * 100,
			Prices:        prices,
		}
		c.store(clientdata.NamespaceOverview, symbol, quote, ttlOverview)
		return quote
	}

	if c.fromStale(clientdata.NamespaceOverview, symbol, &quote) {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached index quote")
		return quote
	}

	c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, generating synthetic index quote")
	return syntheticIndexQuote(symbol)
}

// GetStockPrice returns the current quote for a symbol.
func (c *Client) GetStockPrice(ctx context.Context, symbol string) domain.StockQuote {
	var quote domain.StockQuote
	if c.fromCache(clientdata.NamespaceQuote, symbol, &quote) {
		return quote
	}

	points, err := c.fetchHistory(ctx, symbol, 5)
	if err == nil && len(points) > 0 {
		last := points[len(points)-1]
		quote = domain.StockQuote{
			Symbol:        symbol,
			CurrentPrice:  last.Close,
			ChangePercent: changePercent(points),
			Volume:        last.Volume,
		}
		c.store(clientdata.NamespaceQuote, symbol, quote, ttlQuote)
		return quote
	}

	if c.fromStale(clientdata.NamespaceQuote, symbol, &quote) {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached quote")
		return quote
	}

	c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, generating synthetic quote")
	return syntheticStockQuote(symbol)
}

// GetSectorPerformance returns one-month percentage change for the ten SPDR
// sector funds, keyed by sector name.
func (c *Client) GetSectorPerformance(ctx context.Context) map[string]float64 {
	performance := make(map[string]float64, len(sectorETFs))

	for _, sector := range sectorETFs {
		var perf float64
		if c.fromCache(clientdata.NamespaceSectors, sector.Symbol, &perf) {
			performance[sector.Name] = perf
			continue
		}

		points, err := c.fetchHistory(ctx, sector.Symbol, 30)
		if err == nil && len(points) > 1 {
			start := points[0].Close
			end := points[len(points)-1].Close
			perf = formulas.Round2((end - start) / start * 100)
			c.store(clientdata.NamespaceSectors, sector.Symbol, perf, ttlSectors)
			performance[sector.Name] = perf
			continue
		}

		if c.fromStale(clientdata.NamespaceSectors, sector.Symbol, &perf) {
			performance[sector.Name] = perf
			continue
		}

		performance[sector.Name] = syntheticSectorPerformance(sector.Symbol)
	}

	return performance
}

// GetHistoricalSeries returns daily price points for the lookback window.
func (c *Client) GetHistoricalSeries(ctx context.Context, symbol string, days int) []domain.PricePoint {
	if days <= 0 {
		days = 30
	}
	cacheKey := fmt.Sprintf("%s:%d", symbol, days)

	var points []domain.PricePoint
	if c.fromCache(clientdata.NamespaceHistory, cacheKey, &points) {
		return points
	}

	points, err := c.fetchHistory(ctx, symbol, days)
	if err == nil && len(points) > 0 {
		c.store(clientdata.NamespaceHistory, cacheKey, points, ttlHistory)
		return points
	}

	if c.fromStale(clientdata.NamespaceHistory, cacheKey, &points) {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached series")
		return points
	}

	c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, generating synthetic series")
	return syntheticSeries(symbol, days, c.now())
}

// GetStockHistory returns a year of history with derived return statistics.
func (c *Client) GetStockHistory(ctx context.Context, symbol string) *domain.StockHistory {
	cacheKey := symbol + ":1y"

	var history domain.StockHistory
	if c.fromCache(clientdata.NamespaceHistory, cacheKey, &history) {
		return &history
	}

	points, err := c.fetchHistory(ctx, symbol, 365)
	if err == nil && len(points) > 1 {
		prices := closes(points)
		returns := formulas.CalculateReturns(prices)
		history = domain.StockHistory{
			Symbol:       symbol,
			Prices:       prices,
			Returns:      returns,
			CurrentPrice: prices[len(prices)-1],
			Volatility:   formulas.AnnualizedVolatility(returns),
		}
		c.store(clientdata.NamespaceHistory, cacheKey, history, ttlHistory)
		return &history
	}

	if c.fromStale(clientdata.NamespaceHistory, cacheKey, &history) {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached history")
		return &history
	}

	c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, generating synthetic history")
	history = syntheticStockHistory(symbol)
	return &history
}

// GetCryptoPrices returns quotes for the major crypto assets, keyed by
// display name.
func (c *Client) GetCryptoPrices(ctx context.Context) map[string]CryptoQuote {
	prices := make(map[string]CryptoQuote, len(cryptoAssets))

	for _, asset := range cryptoAssets {
		var quote CryptoQuote
		if c.fromCache(clientdata.NamespaceCrypto, asset.Name, &quote) {
			prices[asset.Name] = quote
			continue
		}

		points, err := c.fetchHistory(ctx, asset.Symbol, 5)
		if err == nil && len(points) > 0 {
			quote = CryptoQuote{
				Price:         points[len(points)-1].Close,
				ChangePercent: changePercent(points),
			}
			c.store(clientdata.NamespaceCrypto, asset.Name, quote, ttlCrypto)
			prices[asset.Name] = quote
			continue
		}

		if c.fromStale(clientdata.NamespaceCrypto, asset.Name, &quote) {
			prices[asset.Name] = quote
			continue
		}

		prices[asset.Name] = syntheticCryptoQuote(asset.Name)
	}

	return prices
}

// GetBondYields returns treasury yields by maturity name.
func (c *Client) GetBondYields(ctx context.Context) map[string]BondYield {
	yields := make(map[string]BondYield, len(treasuries))

	for _, bond := range treasuries {
		var y BondYield
		if c.fromCache(clientdata.NamespaceBonds, bond.Name, &y) {
			yields[bond.Name] = y
			continue
		}

		points, err := c.fetchHistory(ctx, bond.Symbol, 5)
		if err == nil && len(points) > 0 {
			last := points[len(points)-1]
			prev := last
			if len(points) > 1 {
				prev = points[len(points)-2]
			}
			y = BondYield{Yield: last.Close, Change: last.Close - prev.Close}
			c.store(clientdata.NamespaceBonds, bond.Name, y, ttlBonds)
			yields[bond.Name] = y
			continue
		}

		if c.fromStale(clientdata.NamespaceBonds, bond.Name, &y) {
			yields[bond.Name] = y
			continue
		}

		yields[bond.Name] = syntheticBondYield(bond.Name)
	}

	return yields
}

// GetEconomicIndicators returns the macro indicator set. There is no
// upstream feed for these, so values come from the daily-seeded generator.
func (c *Client) GetEconomicIndicators(ctx context.Context) map[string]EconomicIndicator {
	return syntheticEconomicIndicators(c.now())
}

// fetchHistory retrieves daily price points from the upstream feed.
func (c *Client) fetchHistory(ctx context.Context, symbol string, days int) ([]domain.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/v1/history?symbol=%s&days=%d", c.baseURL, url.QueryEscape(symbol), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history API returned status %d", resp.StatusCode)
	}

	var result struct {
		Points []domain.PricePoint `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}

	return result.Points, nil
}

func (c *Client) fromCache(namespace, key string, dest interface{}) bool {
	if c.cacheRepo == nil {
		return false
	}
	found, err := c.cacheRepo.GetIfFresh(namespace, key, dest)
	if err != nil {
		c.log.Warn().Err(err).Str("namespace", namespace).Str("key", key).Msg("Cache read failed")
		return false
	}
	return found
}

func (c *Client) fromStale(namespace, key string, dest interface{}) bool {
	if c.cacheRepo == nil {
		return false
	}
	found, err := c.cacheRepo.GetStale(namespace, key, dest)
	if err != nil {
		return false
	}
	return found
}

func (c *Client) store(namespace, key string, value interface{}, ttl time.Duration) {
	if c.cacheRepo == nil {
		return
	}
	if err := c.cacheRepo.Store(namespace, key, value, ttl); err != nil {
		c.log.Warn().Err(err).Str("namespace", namespace).Str("key", key).Msg("Failed to cache entry")
	}
}

// changePercent computes the day-over-day percentage change of the last
// close. Zero when there is no prior point or its close is zero, so a bad
// upstream value never produces NaN or Inf.
func changePercent(points []domain.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	last := points[len(points)-1]
	prev := points[len(points)-2]
	if prev.Close <= 0 {
		return 0
	}
	return (last.Close - prev.Close) / prev.Close * 100
}

func closes(points []domain.PricePoint) []float64 {
	prices := make([]float64, len(points))
	for i, point := range points {
		prices[i] = point.Close
	}
	return prices
}
