package marketdata

import (
	"context"
	"fmt"

	talib "github.com/markcheno/go-talib"

	"github.com/aristath/advisor/pkg/formulas"
)

// smaPeriod is the moving average window for trend detection.
const smaPeriod = 5

// MarketInsights summarizes current conditions: index breadth, volatility
// regime, sector rotation, and the S&P 500 short-term trend.
func (c *Client) MarketInsights(ctx context.Context) []string {
	insights := []string{}

	overview := c.GetMarketOverview(ctx)

	positive := 0
	changes := make([]float64, 0, len(overview))
	for _, quote := range overview {
		if quote.ChangePercent > 0 {
			positive++
		}
		abs := quote.ChangePercent
		if abs < 0 {
			abs = -abs
		}
		changes = append(changes, abs)
	}
	total := len(overview)

	switch {
	case positive == total:
		insights = append(insights, "🟢 All major indices are positive today, indicating broad market strength.")
	case float64(positive) >= float64(total)*0.75:
		insights = append(insights, "📈 Most major indices are positive, showing overall market optimism.")
	case float64(positive) >= float64(total)*0.25:
		insights = append(insights, "⚖️ Mixed market performance with some indices up and others down.")
	default:
		insights = append(insights, "🔴 Most indices are negative today, suggesting market caution.")
	}

	avgAbsChange := formulas.Mean(changes)
	switch {
	case avgAbsChange > 2:
		insights = append(insights, "⚡ High volatility detected - consider dollar-cost averaging for new investments.")
	case avgAbsChange < 0.5:
		insights = append(insights, "😴 Low volatility market - relatively stable trading conditions.")
	default:
		insights = append(insights, "📊 Normal market volatility - good conditions for regular investing.")
	}

	sectors := c.GetSectorPerformance(ctx)
	bestName, bestPerf, worstName, worstPerf := sectorExtremes(sectors)
	insights = append(insights,
		fmt.Sprintf("🏆 Best performing sector: %s (+%.1f%%)", bestName, bestPerf),
		fmt.Sprintf("📉 Worst performing sector: %s (%+.1f%%)", worstName, worstPerf),
	)

	if sp500, ok := overview["S&P 500"]; ok && len(sp500.Prices) >= 10 {
		insights = append(insights, fmt.Sprintf(
			"📈 S&P 500 shows %s trend over the last 10 trading days.",
			smaTrend(sp500.Prices[len(sp500.Prices)-10:]),
		))
	}

	insights = append(insights, "💡 Remember: Market timing is difficult. Focus on consistent, long-term investing.")

	return insights
}

// sectorExtremes finds the best and worst sectors, scanning in the fixed
// presentation order so ties resolve deterministically.
func sectorExtremes(performance map[string]float64) (bestName string, bestPerf float64, worstName string, worstPerf float64) {
	first := true
	for _, sector := range sectorETFs {
		perf, ok := performance[sector.Name]
		if !ok {
			continue
		}
		if first || perf > bestPerf {
			bestName, bestPerf = sector.Name, perf
		}
		if first || perf < worstPerf {
			worstName, worstPerf = sector.Name, perf
		}
		first = false
	}
	return bestName, bestPerf, worstName, worstPerf
}

// smaTrend labels the direction of a price window by comparing the last
// moving average value against the first complete one.
func smaTrend(prices []float64) string {
	if len(prices) < smaPeriod+1 {
		if prices[len(prices)-1] > prices[0] {
			return "upward"
		}
		return "downward"
	}

	sma := talib.Sma(prices, smaPeriod)
	if sma[len(sma)-1] > sma[smaPeriod-1] {
		return "upward"
	}
	return "downward"
}
