// Package formulas provides pure financial math shared across modules.
package formulas

import "math"

// Mean calculates the arithmetic mean of a series.
// Returns 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev calculates the population standard deviation of a series.
// Returns 0 when fewer than two values are present.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// CalculateReturns converts a price series into periodic returns.
// Returns an empty slice when fewer than two prices are present.
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// AnnualizedVolatility calculates annualized volatility from daily returns
// assuming 252 trading days.
func AnnualizedVolatility(dailyReturns []float64) float64 {
	return StdDev(dailyReturns) * math.Sqrt(252)
}

// Clamp constrains a value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// Round1 rounds to one decimal place.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func pow(base, exp float64) float64 {
	return math.Pow(base, exp)
}
