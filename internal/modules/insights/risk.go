package insights

import (
	"github.com/aristath/advisor/internal/domain"
)

// RiskFactors are the profile attributes that feed the risk score.
type RiskFactors struct {
	Age           int     `json:"age"`
	Income        float64 `json:"income"`
	Debt          float64 `json:"debt"`
	SavingsRate   float64 `json:"savings_rate"`
	RiskTolerance string  `json:"risk_tolerance"`
	Experience    string  `json:"experience"`
}

// RiskAssessment is the scored risk capacity of a profile on a 1-10 scale.
type RiskAssessment struct {
	RiskScore      int         `json:"risk_score"`
	RiskFactors    RiskFactors `json:"risk_factors"`
	Recommendation string      `json:"recommendation"`
}

// AssessRisk scores the profile's risk capacity. Starting from a neutral
// baseline of 5, each factor shifts the score up or down:
//
//   - Age: under 30 +2, under 50 +1, otherwise -1
//   - Income: above 100k +1, below 40k -1
//   - Debt ratio: above 40% -2, above 20% -1
//   - Savings rate: above 20% +1, below 10% -1
//   - Tolerance: Conservative -1, Moderate 0, Aggressive +2
//   - Experience: Beginner -1, Intermediate 0, Advanced +1
//
// The result is clamped to [1, 10] and mapped to a portfolio style
// recommendation.
func AssessRisk(p *domain.UserProfile) *RiskAssessment {
	factors := RiskFactors{
		Age:           p.Age,
		Income:        p.AnnualIncome,
		Debt:          p.DebtAmount,
		SavingsRate:   p.SavingsRate(),
		RiskTolerance: string(p.RiskTolerance),
		Experience:    string(p.InvestmentExperience),
	}

	score := 5

	switch {
	case p.Age < 30:
		score += 2
	case p.Age < 50:
		score++
	default:
		score--
	}

	if p.AnnualIncome > 100000 {
		score++
	} else if p.AnnualIncome < 40000 {
		score--
	}

	debtRatio := p.DebtToIncome()
	if debtRatio > 0.4 {
		score -= 2
	} else if debtRatio > 0.2 {
		score--
	}

	if factors.SavingsRate > 0.2 {
		score++
	} else if factors.SavingsRate < 0.1 {
		score--
	}

	switch p.RiskTolerance {
	case domain.RiskConservative:
		score--
	case domain.RiskAggressive:
		score += 2
	}

	switch p.InvestmentExperience {
	case domain.ExperienceBeginner:
		score--
	case domain.ExperienceAdvanced:
		score++
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}

	return &RiskAssessment{
		RiskScore:      score,
		RiskFactors:    factors,
		Recommendation: riskRecommendation(score),
	}
}

// riskRecommendation maps the risk score to a portfolio style.
func riskRecommendation(score int) string {
	switch {
	case score <= 3:
		return "Conservative portfolio: Focus on bonds, CDs, and stable value funds. Minimal stock exposure."
	case score <= 5:
		return "Moderate portfolio: Balanced mix of stocks and bonds (60/40 or 70/30). Diversified approach."
	case score <= 7:
		return "Growth-oriented portfolio: Higher stock allocation (80/20). Focus on diversified equity funds."
	default:
		return "Aggressive portfolio: Primarily stocks with growth focus. Consider individual stocks and growth funds."
	}
}
