package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	// Population std dev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestCalculateReturns_ZeroPrice(t *testing.T) {
	returns := CalculateReturns([]float64{0, 100})
	assert.Equal(t, []float64{0}, returns)
}

func TestFutureValue(t *testing.T) {
	// 10000 at 3% for 10 years.
	fv := FutureValue(10000, 0.03, 10)
	assert.InDelta(t, 10000*math.Pow(1.03, 10), fv, 1e-6)
}

func TestAnnuityPayment_RoundTrip(t *testing.T) {
	// Saving the computed payment every month at the same rate must
	// accumulate back to the target.
	target := 50000.0
	years := 7.0
	pmt := AnnuityPayment(target, 0.07, years)
	accumulated := AnnuityFutureValue(pmt, 0.07, years*12)
	assert.InDelta(t, target, accumulated, 0.01)
}

func TestAnnuityPayment_ZeroRate(t *testing.T) {
	// No growth: payment is simple division.
	assert.InDelta(t, 100.0, AnnuityPayment(1200, 0, 1), 1e-9)
}

func TestAnnuityPayment_ZeroYears(t *testing.T) {
	assert.Equal(t, 0.0, AnnuityPayment(1000, 0.07, 0))
}

func TestCompoundMonthly(t *testing.T) {
	// 12 months at 12% annual = 1% monthly.
	fv := CompoundMonthly(1000, 0.12, 12)
	assert.InDelta(t, 1000*math.Pow(1.01, 12), fv, 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1, 10))
	assert.Equal(t, 10.0, Clamp(15, 1, 10))
	assert.Equal(t, 5.0, Clamp(5, 1, 10))
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.02}
	expected := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, expected, AnnualizedVolatility(returns), 1e-9)
}
