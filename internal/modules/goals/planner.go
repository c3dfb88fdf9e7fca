// Package goals plans savings goals: inflation-adjusted targets, required
// monthly contributions, feasibility, investment strategy, progress tracking
// and budget allocation across competing goals.
package goals

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Planning assumptions.
const (
	inflationRate = 0.03
	marketReturn  = 0.07
)

// Strategy is the recommended investment approach for a goal's timeline.
type Strategy struct {
	TimeHorizon           float64            `json:"time_horizon"`
	RiskLevel             string             `json:"risk_level"`
	RecommendedAllocation map[string]float64 `json:"recommended_allocation"`
	InvestmentVehicles    []string           `json:"investment_vehicles"`
	RebalancingFrequency  string             `json:"rebalancing_frequency"`
}

// Plan is a fully worked savings goal plan.
type Plan struct {
	GoalName             string              `json:"goal_name"`
	TargetAmount         float64             `json:"target_amount"`
	FutureValueNeeded    float64             `json:"future_value_needed"`
	TimelineYears        float64             `json:"timeline_years"`
	MonthlySavingsNeeded float64             `json:"monthly_savings_needed"`
	Feasibility          string              `json:"feasibility"`
	Recommendations      []string            `json:"recommendations"`
	InvestmentStrategy   *Strategy           `json:"investment_strategy"`
	Priority             domain.GoalPriority `json:"priority"`
}

// Progress reports where a goal stands against its target.
type Progress struct {
	CurrentAmount      float64 `json:"current_amount"`
	ProjectedTotal     float64 `json:"projected_total"`
	TargetAmount       float64 `json:"target_amount"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             string  `json:"status"`
	Shortfall          float64 `json:"shortfall"`
	Surplus            float64 `json:"surplus"`
}

// Planner builds goal plans against a user's financial profile.
type Planner struct {
	log zerolog.Logger
}

// NewPlanner creates a new goal planner.
func NewPlanner(log zerolog.Logger) *Planner {
	return &Planner{log: log.With().Str("module", "goals").Logger()}
}

// CreatePlan builds the complete plan for a single goal: the target grown by
// inflation over the timeline, the monthly contribution needed at the assumed
// market return, a feasibility verdict against the profile's savings
// capacity, tailored recommendations and an investment strategy.
func (pl *Planner) CreatePlan(goal *domain.Goal, p *domain.UserProfile) *Plan {
	futureValue := formulas.FutureValue(goal.TargetAmount, inflationRate, goal.TimelineYears)
	monthlyNeeded := formulas.AnnuityPayment(futureValue, marketReturn, goal.TimelineYears)
	feasibility := assessFeasibility(monthlyNeeded, p)

	return &Plan{
		GoalName:             goal.Name,
		TargetAmount:         goal.TargetAmount,
		FutureValueNeeded:    futureValue,
		TimelineYears:        goal.TimelineYears,
		MonthlySavingsNeeded: monthlyNeeded,
		Feasibility:          feasibility,
		Recommendations:      goalRecommendations(goal, p, feasibility),
		InvestmentStrategy:   investmentStrategy(goal.TimelineYears, p),
		Priority:             goal.Priority,
	}
}

// Progress projects the current balance plus ongoing contributions forward
// to the goal deadline and buckets the outcome.
func (pl *Planner) Progress(currentAmount, monthlyContribution, timelineRemaining, targetAmount float64) *Progress {
	months := timelineRemaining * 12

	futureCurrent := formulas.CompoundMonthly(currentAmount, marketReturn, months)
	futureContributions := formulas.AnnuityFutureValue(monthlyContribution, marketReturn, months)
	projectedTotal := futureCurrent + futureContributions

	progressPct := 0.0
	if targetAmount > 0 {
		progressPct = projectedTotal / targetAmount * 100
	}

	var status string
	switch {
	case progressPct >= 100:
		status = "On Track"
	case progressPct >= 90:
		status = "Slightly Behind"
	case progressPct >= 75:
		status = "Behind"
	default:
		status = "Significantly Behind"
	}

	return &Progress{
		CurrentAmount:      currentAmount,
		ProjectedTotal:     projectedTotal,
		TargetAmount:       targetAmount,
		ProgressPercentage: progressPct,
		Status:             status,
		Shortfall:          max0(targetAmount - projectedTotal),
		Surplus:            max0(projectedTotal - targetAmount),
	}
}

// assessFeasibility compares the required contribution to the profile's
// savings capacity and income.
func assessFeasibility(monthlyNeeded float64, p *domain.UserProfile) string {
	availableSavings := p.MonthlySavings
	monthlyIncome := p.AnnualIncome / 12

	incomePct := -1.0
	if monthlyIncome > 0 {
		incomePct = monthlyNeeded / monthlyIncome * 100
	}

	switch {
	case monthlyNeeded <= availableSavings*0.3:
		return "Highly Feasible - Can be achieved with 30% or less of current savings"
	case monthlyNeeded <= availableSavings*0.6:
		return "Feasible - Requires 30-60% of current savings capacity"
	case monthlyNeeded <= availableSavings:
		return "Challenging - Requires most of your current savings capacity"
	case incomePct >= 0 && incomePct <= 20:
		return "Requires Income Increase - Need to boost savings rate"
	default:
		return "Very Challenging - May need to extend timeline or reduce target amount"
	}
}

// goalRecommendations builds advice from the timeline, amount, feasibility,
// the goal's name, and the profile's tolerance and age, in that order.
func goalRecommendations(goal *domain.Goal, p *domain.UserProfile, feasibility string) []string {
	recommendations := []string{}

	switch {
	case goal.TimelineYears < 2:
		recommendations = append(recommendations,
			"Short timeline - Focus on high-yield savings accounts and CDs for capital preservation",
			"Avoid volatile investments due to short time horizon")
	case goal.TimelineYears < 5:
		recommendations = append(recommendations,
			"Medium timeline - Consider balanced portfolio with 60% stocks, 40% bonds",
			"Use tax-advantaged accounts if applicable")
	default:
		recommendations = append(recommendations,
			"Long timeline - Take advantage of compound growth with stock-heavy portfolio",
			"Consider aggressive growth investments for early years")
	}

	if goal.TargetAmount > 100000 {
		recommendations = append(recommendations,
			"Large goal - Break into smaller milestones to track progress",
			"Consider multiple investment accounts and strategies")
	}

	if strings.Contains(feasibility, "Very Challenging") || strings.Contains(feasibility, "Requires Income Increase") {
		recommendations = append(recommendations,
			"Consider extending the timeline to make monthly savings more manageable",
			"Look for ways to increase income or reduce expenses",
			"Explore side income opportunities")
	} else if strings.Contains(feasibility, "Challenging") {
		recommendations = append(recommendations,
			"Automate savings to ensure consistent contributions",
			"Review and optimize your budget to free up more savings")
	}

	goalLower := strings.ToLower(goal.Name)
	switch {
	case strings.Contains(goalLower, "emergency"):
		recommendations = append(recommendations,
			"Keep emergency funds in liquid, low-risk accounts (high-yield savings)",
			"Target 3-6 months of living expenses")
	case strings.Contains(goalLower, "house") || strings.Contains(goalLower, "home"):
		recommendations = append(recommendations,
			"Consider first-time homebuyer programs and assistance",
			"Save for down payment in conservative investments",
			"Don't forget closing costs (2-5% of home price)")
	case strings.Contains(goalLower, "retirement"):
		recommendations = append(recommendations,
			"Maximize employer 401(k) match first",
			"Consider Roth IRA for tax-free growth",
			"Use age-based target-date funds for automatic rebalancing")
	case strings.Contains(goalLower, "education"):
		recommendations = append(recommendations,
			"Look into 529 education savings plans for tax advantages",
			"Research scholarships and financial aid options")
	}

	switch p.RiskTolerance {
	case domain.RiskConservative:
		recommendations = append(recommendations,
			"Focus on capital preservation with bonds and CDs",
			"Accept lower returns for stability")
	case domain.RiskAggressive:
		recommendations = append(recommendations,
			"Consider higher allocation to growth stocks and equity funds",
			"Take advantage of market volatility for dollar-cost averaging")
	}

	if p.Age < 30 {
		recommendations = append(recommendations,
			"Take advantage of time - consider aggressive growth strategies")
	} else if p.Age > 50 {
		recommendations = append(recommendations,
			"Balance growth with capital preservation as you near retirement")
	}

	return recommendations
}

// investmentStrategy picks an allocation and vehicle list for the timeline,
// with the medium and long bands further split by risk tolerance.
func investmentStrategy(timelineYears float64, p *domain.UserProfile) *Strategy {
	strategy := &Strategy{
		TimeHorizon:          timelineYears,
		RiskLevel:            string(p.RiskTolerance),
		RebalancingFrequency: "Quarterly",
	}

	switch {
	case timelineYears < 2:
		strategy.RecommendedAllocation = map[string]float64{
			"Cash/CDs":           70,
			"High-Yield Savings": 20,
			"Short-term Bonds":   10,
		}
		strategy.InvestmentVehicles = []string{
			"High-yield savings accounts",
			"Certificates of Deposit (CDs)",
			"Money market accounts",
			"Short-term treasury bills",
		}
	case timelineYears < 5:
		switch p.RiskTolerance {
		case domain.RiskConservative:
			strategy.RecommendedAllocation = map[string]float64{"Bonds": 60, "Stocks": 30, "Cash": 10}
		case domain.RiskAggressive:
			strategy.RecommendedAllocation = map[string]float64{"Stocks": 70, "Bonds": 25, "Cash": 5}
		default:
			strategy.RecommendedAllocation = map[string]float64{"Stocks": 50, "Bonds": 40, "Cash": 10}
		}
		strategy.InvestmentVehicles = []string{
			"Target-date funds",
			"Balanced mutual funds",
			"Bond index funds",
			"Broad market ETFs",
		}
	default:
		switch p.RiskTolerance {
		case domain.RiskConservative:
			strategy.RecommendedAllocation = map[string]float64{"Stocks": 50, "Bonds": 40, "Real Estate": 5, "Cash": 5}
		case domain.RiskAggressive:
			strategy.RecommendedAllocation = map[string]float64{"Stocks": 85, "Bonds": 10, "Real Estate": 5}
		default:
			strategy.RecommendedAllocation = map[string]float64{"Stocks": 70, "Bonds": 25, "Real Estate": 5}
		}
		strategy.InvestmentVehicles = []string{
			"Low-cost index funds",
			"ETFs (Exchange-Traded Funds)",
			"Target-date funds",
			"Real Estate Investment Trusts (REITs)",
			"International diversified funds",
		}
	}

	return strategy
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// formatBudget renders a dollar amount with cents for optimizer summaries.
func formatBudget(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
