// Package portfolio analyzes portfolio composition: risk metrics,
// diversification scoring, allocation breakdown and rebalancing
// recommendations tailored to the owner's profile.
package portfolio

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Asset class assumptions used when no price history exists for a holding.
const (
	riskFreeRate = 0.03

	bondVolatility   = 0.04
	reVolatility     = 0.15
	cryptoVolatility = 0.80

	bondReturn   = 0.05
	cashReturn   = 0.02
	reReturn     = 0.08
	cryptoReturn = 0.15
)

// RiskMetrics holds the computed portfolio-level risk numbers.
type RiskMetrics struct {
	PortfolioRisk  float64 `json:"portfolio_risk"`
	ExpectedReturn float64 `json:"expected_return"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	Volatility     float64 `json:"volatility"`
}

// Analysis is the full portfolio analysis result.
type Analysis struct {
	TotalValue           float64            `json:"total_value"`
	RiskScore            float64            `json:"risk_score"`
	DiversificationScore float64            `json:"diversification_score"`
	RiskAssessment       string             `json:"risk_assessment"`
	Recommendations      []string           `json:"recommendations"`
	Allocation           map[string]float64 `json:"allocation"`
	Metrics              RiskMetrics        `json:"metrics"`
}

// Analyzer computes portfolio analyses using historical stock data.
type Analyzer struct {
	market domain.MarketDataSource
	log    zerolog.Logger
}

// NewAnalyzer creates a new portfolio analyzer.
func NewAnalyzer(market domain.MarketDataSource, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		market: market,
		log:    log.With().Str("module", "portfolio").Logger(),
	}
}

// Analyze computes risk metrics, a diversification score, an allocation
// breakdown and recommendations for the portfolio in the context of its
// owner's profile.
func (a *Analyzer) Analyze(ctx context.Context, pf *domain.Portfolio, p *domain.UserProfile) *Analysis {
	totalValue := pf.TotalValue()

	histories := make(map[string]*domain.StockHistory)
	for _, symbol := range pf.StockSymbols() {
		histories[symbol] = a.market.GetStockHistory(ctx, symbol)
	}

	metrics := a.riskMetrics(pf, histories)

	return &Analysis{
		TotalValue:           totalValue,
		RiskScore:            metrics.PortfolioRisk,
		DiversificationScore: DiversificationScore(pf),
		RiskAssessment:       assessRiskLevel(metrics.PortfolioRisk),
		Recommendations:      a.recommendations(pf, p, metrics),
		Allocation:           allocationBreakdown(pf),
		Metrics:              metrics,
	}
}

// riskMetrics computes weighted volatility, expected return, Sharpe ratio and
// the 1-10 risk score. Stock volatility and returns come from price history;
// the other asset classes use fixed volatility and return assumptions.
func (a *Analyzer) riskMetrics(pf *domain.Portfolio, histories map[string]*domain.StockHistory) RiskMetrics {
	totalValue := pf.TotalValue()
	if totalValue == 0 {
		return RiskMetrics{}
	}

	variance := 0.0
	expectedReturn := 0.0

	for symbol, amount := range pf.Stocks {
		weight := amount / totalValue
		history, ok := histories[symbol]
		if !ok || history == nil {
			continue
		}

		variance += weight * weight * history.Volatility * history.Volatility
		if len(history.Returns) > 0 {
			annualized := formulas.Mean(history.Returns) * 252
			expectedReturn += weight * annualized
		}
	}

	bondWeight := pf.Bonds / totalValue
	cashWeight := pf.Cash / totalValue
	reWeight := pf.RealEstate / totalValue
	cryptoWeight := pf.Crypto / totalValue

	variance += bondWeight * bondWeight * bondVolatility * bondVolatility
	variance += reWeight * reWeight * reVolatility * reVolatility
	variance += cryptoWeight * cryptoWeight * cryptoVolatility * cryptoVolatility

	expectedReturn += bondWeight * bondReturn
	expectedReturn += cashWeight * cashReturn
	expectedReturn += reWeight * reReturn
	expectedReturn += cryptoWeight * cryptoReturn

	volatility := math.Sqrt(variance)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (expectedReturn - riskFreeRate) / volatility
	}

	return RiskMetrics{
		PortfolioRisk:  formulas.Clamp(volatility*50, 1, 10),
		ExpectedReturn: expectedReturn,
		SharpeRatio:    sharpe,
		Volatility:     volatility,
	}
}

// DiversificationScore rates how well spread the portfolio is on a 1-10
// scale. Asset class coverage contributes up to 8 points, individual stock
// count up to 3, and low concentration (Herfindahl index) up to 3; the sum
// is clamped to [1, 10]. An empty portfolio scores 0.
func DiversificationScore(pf *domain.Portfolio) float64 {
	totalValue := pf.TotalValue()
	if totalValue == 0 {
		return 0
	}

	assetClasses := 0
	if len(pf.Stocks) > 0 {
		assetClasses++
	}
	if pf.Bonds > 0 {
		assetClasses++
	}
	if pf.Cash > 0 {
		assetClasses++
	}
	if pf.RealEstate > 0 {
		assetClasses++
	}
	if pf.Crypto > 0 {
		assetClasses++
	}

	var weights []float64
	for _, amount := range pf.Stocks {
		weights = append(weights, amount/totalValue)
	}
	for _, amount := range []float64{pf.Bonds, pf.Cash, pf.RealEstate, pf.Crypto} {
		if amount > 0 {
			weights = append(weights, amount/totalValue)
		}
	}

	hhi := 0.0
	for _, w := range weights {
		hhi += w * w
	}

	score := math.Min(8, float64(assetClasses)*1.6)

	numStocks := len(pf.Stocks)
	switch {
	case numStocks >= 10:
		score += 3
	case numStocks >= 5:
		score += 2
	case numStocks >= 2:
		score++
	}

	score += math.Max(0, 3-(hhi-0.1)*10)

	return formulas.Clamp(score, 1, 10)
}

// assessRiskLevel converts the risk score to a descriptive assessment.
func assessRiskLevel(riskScore float64) string {
	switch {
	case riskScore <= 3:
		return "Low Risk - Conservative portfolio with stable returns"
	case riskScore <= 5:
		return "Moderate Risk - Balanced approach with steady growth potential"
	case riskScore <= 7:
		return "Medium-High Risk - Growth-focused with higher volatility"
	default:
		return "High Risk - Aggressive portfolio with significant volatility"
	}
}

// recommendations checks the portfolio against the owner's tolerance, age
// and liquidity needs, in fixed rule order.
func (a *Analyzer) recommendations(pf *domain.Portfolio, p *domain.UserProfile, metrics RiskMetrics) []string {
	totalValue := pf.TotalValue()
	if totalValue == 0 {
		return []string{"Start building your portfolio with diversified index funds"}
	}

	recommendations := []string{}

	if p.RiskTolerance == domain.RiskConservative && metrics.PortfolioRisk > 5 {
		recommendations = append(recommendations,
			"Your portfolio is riskier than your risk tolerance suggests. Consider increasing bond allocation.")
	} else if p.RiskTolerance == domain.RiskAggressive && metrics.PortfolioRisk < 6 {
		recommendations = append(recommendations,
			"Your portfolio is conservative for your risk tolerance. Consider increasing stock allocation.")
	}

	numStocks := len(pf.Stocks)
	if numStocks == 1 {
		recommendations = append(recommendations,
			"Consider diversifying beyond a single stock to reduce concentration risk.")
	} else if numStocks < 5 {
		recommendations = append(recommendations,
			"Add more stocks or consider index funds for better diversification.")
	}

	stockPct := pf.StockValue() / totalValue * 100
	targetStockPct := 100 - p.Age
	if stockPct < float64(targetStockPct)-20 {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider increasing stock allocation to around %d%% for your age.", targetStockPct))
	} else if stockPct > float64(targetStockPct)+20 {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider reducing stock allocation to around %d%% for your age.", targetStockPct))
	}

	cashPct := pf.Cash / totalValue * 100
	if cashPct > 20 {
		recommendations = append(recommendations,
			"High cash allocation. Consider investing excess cash for better returns.")
	} else if cashPct < 5 {
		recommendations = append(recommendations,
			"Consider maintaining 5-10% cash for liquidity and opportunities.")
	}

	cryptoPct := pf.Crypto / totalValue * 100
	if cryptoPct > 10 {
		recommendations = append(recommendations,
			"Cryptocurrency allocation is high. Consider limiting to 5-10% of portfolio.")
	}

	if metrics.SharpeRatio < 0.5 {
		recommendations = append(recommendations,
			"Portfolio risk-adjusted returns could be improved. Consider low-cost index funds.")
	}

	emergencyFundNeeded := p.MonthlyExpenses() * 6
	if pf.Cash < emergencyFundNeeded {
		recommendations = append(recommendations,
			fmt.Sprintf("Build emergency fund of $%s before aggressive investing.", formatAmount(emergencyFundNeeded)))
	}

	return recommendations
}

// allocationBreakdown returns percentage weights per holding. Stock symbols
// map to their own entries; the other asset classes use display names.
func allocationBreakdown(pf *domain.Portfolio) map[string]float64 {
	totalValue := pf.TotalValue()
	allocation := map[string]float64{}
	if totalValue == 0 {
		return allocation
	}

	for symbol, amount := range pf.Stocks {
		allocation[symbol] = amount / totalValue * 100
	}
	if pf.Bonds > 0 {
		allocation["Bonds"] = pf.Bonds / totalValue * 100
	}
	if pf.Cash > 0 {
		allocation["Cash"] = pf.Cash / totalValue * 100
	}
	if pf.RealEstate > 0 {
		allocation["Real Estate"] = pf.RealEstate / totalValue * 100
	}
	if pf.Crypto > 0 {
		allocation["Cryptocurrency"] = pf.Crypto / totalValue * 100
	}

	return allocation
}

// formatAmount renders a whole dollar amount with thousands separators.
func formatAmount(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-" + formatAmount(-amount)
	}
	if rounded < 1000 {
		return fmt.Sprintf("%d", rounded)
	}
	return fmt.Sprintf("%s,%03d", formatAmount(float64(rounded/1000)), rounded%1000)
}
