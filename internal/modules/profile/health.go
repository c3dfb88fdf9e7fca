package profile

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Component weights of the financial health score. The six components sum
// to 100 points.
const (
	maxSavingsPoints    = 25.0
	maxDebtPoints       = 20.0
	maxEmergencyPoints  = 20.0
	maxRiskPoints       = 15.0
	maxGoalsPoints      = 10.0
	maxEmploymentPoints = 10.0
)

// HealthScorer computes the weighted financial health score of a profile.
type HealthScorer struct{}

// NewHealthScorer creates a new health scorer.
func NewHealthScorer() *HealthScorer {
	return &HealthScorer{}
}

// Score computes the six-component financial health score.
//
// Components and weights:
//   - Savings rate (25): annual savings as a share of income
//   - Debt ratio (20): total debt as a share of income
//   - Emergency fund (20): months of expenses covered by current savings
//   - Risk alignment (15): risk tolerance vs the age-appropriate target
//   - Goal setting (10): number of defined financial goals
//   - Employment stability (10): stability weight of the employment status
//
// Returns the component breakdown, the overall percentage with its rating
// band, and recommendations for every underperforming component.
func (h *HealthScorer) Score(p *domain.UserProfile) *domain.FinancialHealthScore {
	components := make(map[string]domain.HealthComponent)
	totalScore := 0.0
	maxScore := 0.0

	// 1. Savings rate
	savingsRate := p.SavingsRate()
	var savingsScore float64
	switch {
	case p.AnnualIncome <= 0:
		savingsScore = 0
	case savingsRate >= 0.20:
		savingsScore = 25
	case savingsRate >= 0.15:
		savingsScore = 20
	case savingsRate >= 0.10:
		savingsScore = 15
	case savingsRate >= 0.05:
		savingsScore = 10
	default:
		savingsScore = 5
	}
	components["savings_rate"] = domain.HealthComponent{
		Score:       savingsScore,
		MaxScore:    maxSavingsPoints,
		Percentage:  savingsRate * 100,
		Description: fmt.Sprintf("Savings rate: %.1f%%", savingsRate*100),
	}
	totalScore += savingsScore
	maxScore += maxSavingsPoints

	// 2. Debt-to-income ratio
	debtRatio := p.DebtToIncome()
	var debtScore float64
	switch {
	case p.AnnualIncome <= 0:
		debtScore = 10 // neutral without income data
	case debtRatio <= 0.10:
		debtScore = 20
	case debtRatio <= 0.20:
		debtScore = 15
	case debtRatio <= 0.30:
		debtScore = 10
	case debtRatio <= 0.40:
		debtScore = 5
	default:
		debtScore = 0
	}
	components["debt_ratio"] = domain.HealthComponent{
		Score:       debtScore,
		MaxScore:    maxDebtPoints,
		Percentage:  debtRatio * 100,
		Description: fmt.Sprintf("Debt-to-income ratio: %.1f%%", debtRatio*100),
	}
	totalScore += debtScore
	maxScore += maxDebtPoints

	// 3. Emergency fund adequacy. Current savings are assumed to hold about
	// three months of contributions.
	monthlyExpenses := p.MonthlyExpenses()
	emergencyMonths := 0.0
	var emergencyScore float64
	if monthlyExpenses > 0 {
		emergencyMonths = p.MonthlySavings / monthlyExpenses * 3
		switch {
		case emergencyMonths >= 6:
			emergencyScore = 20
		case emergencyMonths >= 3:
			emergencyScore = 15
		case emergencyMonths >= 1:
			emergencyScore = 10
		default:
			emergencyScore = 5
		}
	} else {
		emergencyScore = 10 // neutral when expenses cannot be estimated
	}
	components["emergency_fund"] = domain.HealthComponent{
		Score:       emergencyScore,
		MaxScore:    maxEmergencyPoints,
		Months:      emergencyMonths,
		Description: fmt.Sprintf("Emergency fund: %.1f months of expenses", emergencyMonths),
	}
	totalScore += emergencyScore
	maxScore += maxEmergencyPoints

	// 4. Age-appropriate risk taking
	targetRisk := targetRiskForAge(p.Age)
	var riskScore float64
	switch {
	case p.RiskTolerance == targetRisk:
		riskScore = 15
	case adjacentRiskForAge(p.Age, p.RiskTolerance):
		riskScore = 10
	default:
		riskScore = 5
	}
	components["risk_alignment"] = domain.HealthComponent{
		Score:       riskScore,
		MaxScore:    maxRiskPoints,
		CurrentRisk: string(p.RiskTolerance),
		TargetRisk:  string(targetRisk),
		Description: fmt.Sprintf("Risk tolerance: %s (target: %s for age %d)", p.RiskTolerance, targetRisk, p.Age),
	}
	totalScore += riskScore
	maxScore += maxRiskPoints

	// 5. Financial goal setting
	numGoals := len(p.FinancialGoals)
	var goalsScore float64
	switch {
	case numGoals >= 3:
		goalsScore = 10
	case numGoals >= 2:
		goalsScore = 7
	case numGoals >= 1:
		goalsScore = 5
	default:
		goalsScore = 0
	}
	components["goal_setting"] = domain.HealthComponent{
		Score:       goalsScore,
		MaxScore:    maxGoalsPoints,
		NumGoals:    numGoals,
		Description: fmt.Sprintf("Financial goals: %d defined", numGoals),
	}
	totalScore += goalsScore
	maxScore += maxGoalsPoints

	// 6. Employment stability, scaled from the 1-3 stability weight
	employmentScore := float64(p.EmploymentStatus.StabilityScore()) * 3.33
	if employmentScore > 10 {
		employmentScore = 10
	}
	components["employment_stability"] = domain.HealthComponent{
		Score:       employmentScore,
		MaxScore:    maxEmploymentPoints,
		Status:      string(p.EmploymentStatus),
		Description: fmt.Sprintf("Employment: %s", p.EmploymentStatus),
	}
	totalScore += employmentScore
	maxScore += maxEmploymentPoints

	overall := 0.0
	if maxScore > 0 {
		overall = totalScore / maxScore * 100
	}

	return &domain.FinancialHealthScore{
		OverallScore:    formulas.Round1(overall),
		Rating:          ratingForScore(overall),
		TotalPoints:     formulas.Round1(totalScore),
		MaxPoints:       maxScore,
		Components:      components,
		Recommendations: h.recommendations(components),
	}
}

// recommendations returns one improvement suggestion per underperforming
// component, in component order.
func (h *HealthScorer) recommendations(components map[string]domain.HealthComponent) []string {
	recommendations := []string{}

	if components["savings_rate"].Score < 15 {
		recommendations = append(recommendations, "Increase your savings rate to at least 10-15% of income")
	}
	if components["debt_ratio"].Score < 10 {
		recommendations = append(recommendations, "Focus on reducing high-interest debt to improve financial health")
	}
	if components["emergency_fund"].Score < 15 {
		recommendations = append(recommendations, "Build an emergency fund covering 3-6 months of expenses")
	}
	if risk := components["risk_alignment"]; risk.Score < 10 {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider adjusting risk tolerance from %s to %s for your age", risk.CurrentRisk, risk.TargetRisk))
	}
	if components["goal_setting"].Score < 7 {
		recommendations = append(recommendations, "Define specific financial goals to guide your planning")
	}
	if components["employment_stability"].Score < 7 {
		recommendations = append(recommendations, "Consider building additional income streams for financial stability")
	}

	return recommendations
}

// targetRiskForAge maps age bands to the risk tolerance the scorer treats as
// ideal: younger investors can absorb more volatility.
func targetRiskForAge(age int) domain.RiskTolerance {
	switch {
	case age < 30:
		return domain.RiskAggressive
	case age < 50:
		return domain.RiskModerate
	default:
		return domain.RiskConservative
	}
}

// adjacentRiskForAge reports whether the tolerance is one step off the
// age-appropriate target, which earns partial credit.
func adjacentRiskForAge(age int, risk domain.RiskTolerance) bool {
	switch {
	case age < 30:
		return risk == domain.RiskModerate
	case age < 50:
		return risk == domain.RiskConservative || risk == domain.RiskAggressive
	default:
		return risk == domain.RiskModerate
	}
}

// ratingForScore buckets the overall percentage into its rating band.
func ratingForScore(overall float64) domain.HealthRating {
	switch {
	case overall >= 80:
		return domain.RatingExcellent
	case overall >= 65:
		return domain.RatingGood
	case overall >= 50:
		return domain.RatingFair
	case overall >= 35:
		return domain.RatingNeedsImprovement
	default:
		return domain.RatingPoor
	}
}
