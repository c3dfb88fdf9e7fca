package marketdata

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/domain"
)

// unreachableURL forces every fetch down the fallback path.
const unreachableURL = "http://127.0.0.1:1"

var _ domain.MarketDataSource = (*Client)(nil)

func newOfflineClient() *Client {
	return NewClient(unreachableURL, nil, zerolog.Nop())
}

func newCacheRepo(t *testing.T) *clientdata.Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:marketdata_test?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "marketdata-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := clientdata.NewRepository(db.Conn())
	require.NoError(t, repo.InitSchema())
	return repo
}

func TestSyntheticHistoryIsDeterministic(t *testing.T) {
	client := newOfflineClient()
	ctx := context.Background()

	first := client.GetStockHistory(ctx, "ZZZZ")
	second := client.GetStockHistory(ctx, "ZZZZ")

	assert.Equal(t, first, second)
	assert.Len(t, first.Returns, 252)
	assert.Len(t, first.Prices, 253)
	assert.Greater(t, first.Volatility, 0.0)
}

func TestSyntheticHistoryVariesBySymbol(t *testing.T) {
	client := newOfflineClient()
	ctx := context.Background()

	a := client.GetStockHistory(ctx, "AAAA")
	b := client.GetStockHistory(ctx, "BBBB")

	assert.NotEqual(t, a.CurrentPrice, b.CurrentPrice)
}

func TestMarketOverviewFallsBackToSyntheticIndices(t *testing.T) {
	client := newOfflineClient()

	overview := client.GetMarketOverview(context.Background())
	require.Len(t, overview, 4)

	for _, name := range []string{"S&P 500", "Dow Jones", "NASDAQ", "Russell 2000"} {
		quote, ok := overview[name]
		require.True(t, ok, name)
		assert.Len(t, quote.Prices, 30)
		assert.Greater(t, quote.CurrentPrice, 0.0)
	}

	// Synthetic series start at the index base level.
	assert.InDelta(t, 4200, overview["S&P 500"].Prices[0], 1e-9)
	assert.InDelta(t, 34000, overview["Dow Jones"].Prices[0], 1e-9)
}

func TestSectorPerformanceCoversAllSectors(t *testing.T) {
	client := newOfflineClient()

	performance := client.GetSectorPerformance(context.Background())
	assert.Len(t, performance, 10)
	assert.Contains(t, performance, "Technology")
	assert.Contains(t, performance, "Real Estate")
}

func TestCryptoPricesFallBackToBaseLevels(t *testing.T) {
	client := newOfflineClient()

	prices := client.GetCryptoPrices(context.Background())
	require.Len(t, prices, 4)

	btc := prices["BTC"]
	assert.Greater(t, btc.Price, 22500.0)
	assert.Less(t, btc.Price, 67500.0)
}

func TestBondYieldsStayInTypicalRanges(t *testing.T) {
	client := newOfflineClient()

	yields := client.GetBondYields(context.Background())
	require.Len(t, yields, 3)

	tenYear := yields["10-Year Treasury"]
	assert.GreaterOrEqual(t, tenYear.Yield, 2.0)
	assert.LessOrEqual(t, tenYear.Yield, 5.0)
}

func TestEconomicIndicatorsHaveFourMeasures(t *testing.T) {
	client := newOfflineClient()

	indicators := client.GetEconomicIndicators(context.Background())
	require.Len(t, indicators, 4)

	fedFunds := indicators["Federal Funds Rate"]
	assert.GreaterOrEqual(t, fedFunds.Current, 0.25)
	assert.LessOrEqual(t, fedFunds.Current, 5.5)
	assert.NotEmpty(t, fedFunds.Description)
}

func TestGetStockPriceFetchesFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/history", r.URL.Path)
		assert.Equal(t, "NVDA", r.URL.Query().Get("symbol"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"points": []domain.PricePoint{
				{Date: "2026-08-27", Close: 100, Volume: 1000},
				{Date: "2026-08-28", Close: 110, Volume: 2000},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())
	quote := client.GetStockPrice(context.Background(), "NVDA")

	assert.Equal(t, "NVDA", quote.Symbol)
	assert.InDelta(t, 110, quote.CurrentPrice, 1e-9)
	assert.InDelta(t, 10, quote.ChangePercent, 1e-9)
	assert.Equal(t, int64(2000), quote.Volume)
}

func TestGetStockPriceZeroCloseYieldsZeroChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"points": []domain.PricePoint{
				{Date: "2026-08-27", Close: 0, Volume: 500},
				{Date: "2026-08-28", Close: 12, Volume: 800},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())
	quote := client.GetStockPrice(context.Background(), "HALT")

	assert.Equal(t, 0.0, quote.ChangePercent)
	assert.False(t, math.IsNaN(quote.ChangePercent))
	assert.InDelta(t, 12, quote.CurrentPrice, 1e-9)

	_, err := json.Marshal(quote)
	require.NoError(t, err)
}

func TestGetStockPriceSinglePointHasZeroChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"points": []domain.PricePoint{
				{Date: "2026-08-28", Close: 0, Volume: 100},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())
	quote := client.GetStockPrice(context.Background(), "IPO")

	assert.Equal(t, 0.0, quote.ChangePercent)
	assert.False(t, math.IsNaN(quote.ChangePercent))
}

func TestGetStockPriceServesFreshCacheWithoutNetwork(t *testing.T) {
	repo := newCacheRepo(t)
	cached := domain.StockQuote{Symbol: "MSFT", CurrentPrice: 420, ChangePercent: 1.5, Volume: 5000}
	require.NoError(t, repo.Store(clientdata.NamespaceQuote, "MSFT", cached, time.Hour))

	client := NewClient(unreachableURL, repo, zerolog.Nop())
	quote := client.GetStockPrice(context.Background(), "MSFT")

	assert.Equal(t, cached, quote)
}

func TestGetStockPricePrefersStaleCacheOverSynthetic(t *testing.T) {
	repo := newCacheRepo(t)
	stale := domain.StockQuote{Symbol: "AAPL", CurrentPrice: 180, ChangePercent: -0.5, Volume: 9000}
	require.NoError(t, repo.Store(clientdata.NamespaceQuote, "AAPL", stale, -time.Minute))

	client := NewClient(unreachableURL, repo, zerolog.Nop())
	quote := client.GetStockPrice(context.Background(), "AAPL")

	assert.Equal(t, stale, quote)
}

func TestHistoricalSeriesDefaultsTo30Days(t *testing.T) {
	client := newOfflineClient()

	points := client.GetHistoricalSeries(context.Background(), "ZZZZ", 0)
	assert.Len(t, points, 30)

	again := client.GetHistoricalSeries(context.Background(), "ZZZZ", 30)
	for i := range points {
		assert.Equal(t, points[i].Close, again[i].Close)
	}
}

func TestMarketInsightsCoverAllSections(t *testing.T) {
	client := newOfflineClient()

	insights := client.MarketInsights(context.Background())
	require.GreaterOrEqual(t, len(insights), 6)

	assert.Contains(t, insights[2], "Best performing sector:")
	assert.Contains(t, insights[3], "Worst performing sector:")
	assert.Contains(t, insights[4], "S&P 500 shows")
	assert.Equal(t, "💡 Remember: Market timing is difficult. Focus on consistent, long-term investing.", insights[len(insights)-1])
}

func TestSmaTrendDirection(t *testing.T) {
	up := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}
	assert.Equal(t, "upward", smaTrend(up))

	down := []float64{109, 108, 107, 106, 105, 104, 103, 102, 101, 100}
	assert.Equal(t, "downward", smaTrend(down))
}
