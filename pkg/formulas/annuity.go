package formulas

// FutureValue calculates the future value of a present amount under annual
// compounding.
//
// Args:
//
//	presentValue: Amount today
//	annualRate: Annual rate as decimal (e.g., 0.03 for 3%)
//	years: Number of years to compound
//
// Returns:
//
//	Future value after compounding
func FutureValue(presentValue, annualRate, years float64) float64 {
	return presentValue * pow(1+annualRate, years)
}

// AnnuityPayment calculates the level monthly payment needed to reach a
// future value under monthly compounding (standard PMT formula).
//
// PMT = FV * r / ((1 + r)^n - 1)
//
// Degenerates to simple division when the monthly rate is zero.
//
// Args:
//
//	futureValue: Target amount at the end of the period
//	annualRate: Annual return as decimal (e.g., 0.07 for 7%)
//	years: Saving period in years
//
// Returns:
//
//	Required monthly payment
func AnnuityPayment(futureValue, annualRate, years float64) float64 {
	months := years * 12
	if months <= 0 {
		return 0
	}

	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return futureValue / months
	}

	return futureValue * monthlyRate / (pow(1+monthlyRate, months) - 1)
}

// AnnuityFutureValue calculates the future value of a stream of level monthly
// contributions under monthly compounding.
//
// FV = PMT * ((1 + r)^n - 1) / r
//
// Args:
//
//	monthlyPayment: Contribution per month
//	annualRate: Annual return as decimal
//	months: Number of monthly contributions
//
// Returns:
//
//	Accumulated value at the end of the period
func AnnuityFutureValue(monthlyPayment, annualRate, months float64) float64 {
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return monthlyPayment * months
	}

	return monthlyPayment * (pow(1+monthlyRate, months) - 1) / monthlyRate
}

// CompoundMonthly grows a lump sum at a monthly-compounded annual rate.
func CompoundMonthly(presentValue, annualRate, months float64) float64 {
	return presentValue * pow(1+annualRate/12, months)
}
