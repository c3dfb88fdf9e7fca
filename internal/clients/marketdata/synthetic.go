package marketdata

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Synthetic generators stand in for the upstream feed when it is down and no
// cached data exists. Each generator seeds from its key so the same symbol
// always produces the same series, within a call and across restarts.

// seededRand returns a generator seeded by the FNV-1a hash of the key.
func seededRand(key string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(key))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// indexBasePrice returns the reference level for a major index symbol.
func indexBasePrice(symbol string) float64 {
	switch symbol {
	case "^GSPC":
		return 4200
	case "^DJI":
		return 34000
	case "^IXIC":
		return 13000
	default: // Russell 2000 and anything unknown
		return 2000
	}
}

// syntheticIndexQuote builds a 30-day index series with 1.2% daily
// volatility around the symbol's base level.
func syntheticIndexQuote(symbol string) domain.IndexQuote {
	rng := seededRand(symbol)

	prices := make([]float64, 0, 30)
	prices = append(prices, indexBasePrice(symbol))
	for i := 0; i < 29; i++ {
		dailyChange := rng.NormFloat64() * 0.012
		prices = append(prices, prices[len(prices)-1]*(1+dailyChange))
	}

	current := prices[len(prices)-1]
	prev := prices[len(prices)-2]
	return domain.IndexQuote{
		CurrentPrice:  current,
		ChangePercent: (current - prev) / prev * 100,
		Prices:        prices,
	}
}

// syntheticStockQuote prices an arbitrary symbol in the $20-$300 range with
// 2.5% daily volatility.
func syntheticStockQuote(symbol string) domain.StockQuote {
	rng := seededRand(symbol)

	basePrice := 20 + rng.Float64()*280
	changePct := rng.NormFloat64() * 2.5
	return domain.StockQuote{
		Symbol:        symbol,
		CurrentPrice:  basePrice * (1 + changePct/100),
		ChangePercent: changePct,
		Volume:        100000 + rng.Int63n(50000000-100000),
	}
}

// syntheticSectorPerformance draws a monthly move centered on +1% with a 5
// point spread.
func syntheticSectorPerformance(symbol string) float64 {
	rng := seededRand(symbol)
	return formulas.Round2(1 + rng.NormFloat64()*5)
}

// syntheticStockHistory builds a year of daily returns (0.08% drift, 2%
// volatility) starting from a $100 price.
func syntheticStockHistory(symbol string) domain.StockHistory {
	rng := seededRand(symbol)

	returns := make([]float64, 252)
	prices := make([]float64, 0, 253)
	prices = append(prices, 100)
	for i := range returns {
		returns[i] = 0.0008 + rng.NormFloat64()*0.02
		prices = append(prices, prices[len(prices)-1]*(1+returns[i]))
	}

	return domain.StockHistory{
		Symbol:       symbol,
		Prices:       prices,
		Returns:      returns,
		CurrentPrice: prices[len(prices)-1],
		Volatility:   formulas.AnnualizedVolatility(returns),
	}
}

// syntheticSeries builds a dated daily price series with 2% volatility from
// a $50-$200 starting price.
func syntheticSeries(symbol string, days int, now time.Time) []domain.PricePoint {
	rng := seededRand(symbol)

	price := 50 + rng.Float64()*150
	points := make([]domain.PricePoint, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - i)).Format("2006-01-02")
		price *= 1 + rng.NormFloat64()*0.02
		points = append(points, domain.PricePoint{
			Date:   date,
			Close:  formulas.Round2(price),
			Volume: 100000 + rng.Int63n(10000000-100000),
		})
	}
	return points
}

// cryptoBasePrice returns the reference level for a major crypto asset.
func cryptoBasePrice(symbol string) float64 {
	switch symbol {
	case "BTC":
		return 45000
	case "ETH":
		return 3000
	case "ADA":
		return 0.50
	case "DOT":
		return 25
	default:
		return 100
	}
}

// syntheticCryptoQuote prices a crypto asset with 5% daily volatility.
func syntheticCryptoQuote(symbol string) CryptoQuote {
	rng := seededRand(symbol)

	changePct := rng.NormFloat64() * 5
	return CryptoQuote{
		Price:         cryptoBasePrice(symbol) * (1 + changePct/100),
		ChangePercent: changePct,
	}
}

// syntheticBondYield draws a yield from the maturity's typical range.
func syntheticBondYield(name string) BondYield {
	rng := seededRand(name)

	var base float64
	switch {
	case strings.Contains(name, "10-Year"):
		base = 2.0 + rng.Float64()*3.0
	case strings.Contains(name, "5-Year"):
		base = 1.5 + rng.Float64()*3.0
	default: // 30-Year
		base = 2.5 + rng.Float64()*3.0
	}

	return BondYield{
		Yield:  base,
		Change: rng.NormFloat64() * 0.05,
	}
}

// syntheticEconomicIndicators draws the indicator set from typical ranges,
// reseeded once per day so values are stable within a trading day.
func syntheticEconomicIndicators(now time.Time) map[string]EconomicIndicator {
	rng := rand.New(rand.NewSource(now.Unix() / 86400))

	return map[string]EconomicIndicator{
		"Federal Funds Rate": {
			Current:     formulas.Round2(0.25 + rng.Float64()*(5.5-0.25)),
			Description: "The target interest rate set by the Federal Reserve",
			Impact:      "Higher rates typically strengthen USD and affect borrowing costs",
		},
		"10-Year Treasury Yield": {
			Current:     formulas.Round2(1.5 + rng.Float64()*(5.0-1.5)),
			Description: "Yield on 10-year U.S. Treasury bonds",
			Impact:      "Key benchmark for mortgage rates and long-term investment returns",
		},
		"Unemployment Rate": {
			Current:     formulas.Round1(3.5 + rng.Float64()*(8.0-3.5)),
			Description: "Percentage of labor force that is unemployed",
			Impact:      "Lower unemployment generally indicates economic strength",
		},
		"Inflation Rate (CPI)": {
			Current:     formulas.Round1(1.0 + rng.Float64()*(6.0-1.0)),
			Description: "Consumer Price Index year-over-year change",
			Impact:      "Higher inflation erodes purchasing power and affects Fed policy",
		},
	}
}
