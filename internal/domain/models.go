// Package domain contains the pure value types shared across advisor modules.
// The domain layer has no infrastructure dependencies: every type here is a
// plain value object passed between modules and never mutated by a callee.
package domain

import (
	"encoding/json"
	"fmt"
)

// RiskTolerance is the user's self-declared willingness to accept volatility.
type RiskTolerance string

// Risk tolerance levels
const (
	RiskConservative RiskTolerance = "Conservative"
	RiskModerate     RiskTolerance = "Moderate"
	RiskAggressive   RiskTolerance = "Aggressive"
)

// Score returns the ordinal used for scoring and clustering (1-3).
func (r RiskTolerance) Score() int {
	switch r {
	case RiskConservative:
		return 1
	case RiskModerate:
		return 2
	case RiskAggressive:
		return 3
	}
	return 0
}

// Valid reports whether the value is a known risk tolerance.
func (r RiskTolerance) Valid() bool {
	return r.Score() != 0
}

// InvestmentExperience describes how experienced an investor the user is.
type InvestmentExperience string

// Investment experience levels
const (
	ExperienceBeginner     InvestmentExperience = "Beginner"
	ExperienceIntermediate InvestmentExperience = "Intermediate"
	ExperienceAdvanced     InvestmentExperience = "Advanced"
)

// Score returns the ordinal used for scoring and clustering (1-3).
func (e InvestmentExperience) Score() int {
	switch e {
	case ExperienceBeginner:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	}
	return 0
}

// Valid reports whether the value is a known experience level.
func (e InvestmentExperience) Valid() bool {
	return e.Score() != 0
}

// EmploymentStatus describes the user's employment situation.
type EmploymentStatus string

// Employment statuses
const (
	EmploymentEmployed     EmploymentStatus = "Employed"
	EmploymentSelfEmployed EmploymentStatus = "Self-Employed"
	EmploymentUnemployed   EmploymentStatus = "Unemployed"
	EmploymentRetired      EmploymentStatus = "Retired"
	EmploymentStudent      EmploymentStatus = "Student"
)

// StabilityScore returns the employment stability weight used by the
// financial health score (1-3).
func (s EmploymentStatus) StabilityScore() int {
	switch s {
	case EmploymentEmployed:
		return 3
	case EmploymentSelfEmployed, EmploymentRetired:
		return 2
	case EmploymentUnemployed, EmploymentStudent:
		return 1
	}
	return 0
}

// Valid reports whether the value is a known employment status.
func (s EmploymentStatus) Valid() bool {
	return s.StabilityScore() != 0
}

// GoalVocabulary is the fixed set of selectable financial goals, in the
// order they are presented to users.
var GoalVocabulary = []string{
	"Retirement Planning",
	"Emergency Fund",
	"Home Purchase",
	"Education",
	"Investment Growth",
	"Debt Reduction",
}

// UserProfile is the validated financial profile of a single user.
// Profiles are immutable once handed to other components: updates go
// through the profile module, which returns a fresh merged copy.
type UserProfile struct {
	Name                 string               `json:"name"`
	Age                  int                  `json:"age"`
	AnnualIncome         float64              `json:"annual_income"`
	EmploymentStatus     EmploymentStatus     `json:"employment_status"`
	RiskTolerance        RiskTolerance        `json:"risk_tolerance"`
	InvestmentExperience InvestmentExperience `json:"investment_experience"`
	MonthlySavings       float64              `json:"monthly_savings"`
	DebtAmount           float64              `json:"debt_amount"`
	FinancialGoals       []string             `json:"financial_goals"`
	CreatedDate          string               `json:"created_date,omitempty"`
	LastUpdated          string               `json:"last_updated,omitempty"`
	ProfileID            string               `json:"profile_id,omitempty"`
}

// HasGoal reports whether the profile lists the given financial goal.
func (p *UserProfile) HasGoal(goal string) bool {
	for _, g := range p.FinancialGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// SavingsRate returns annual savings as a fraction of annual income.
// Returns 0 when income is zero so callers never divide by zero.
func (p *UserProfile) SavingsRate() float64 {
	if p.AnnualIncome <= 0 {
		return 0
	}
	return p.MonthlySavings * 12 / p.AnnualIncome
}

// DebtToIncome returns total debt as a fraction of annual income.
// Returns 0 when income is zero.
func (p *UserProfile) DebtToIncome() float64 {
	if p.AnnualIncome <= 0 {
		return 0
	}
	return p.DebtAmount / p.AnnualIncome
}

// MonthlyExpenses estimates monthly spending as income minus savings,
// floored at zero.
func (p *UserProfile) MonthlyExpenses() float64 {
	expenses := (p.AnnualIncome - p.MonthlySavings*12) / 12
	if expenses < 0 {
		return 0
	}
	return expenses
}

// ToJSON serializes the profile for export. Round-trippable via FromJSON.
func (p *UserProfile) ToJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	return string(data), nil
}

// FromJSON parses a profile previously exported with ToJSON.
func FromJSON(data []byte) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}

// Portfolio holds a user's current investments. Stock symbols are uppercase
// and map to invested amounts; the remaining asset classes are flat amounts.
// Portfolios are constructed fresh per analysis request and never persisted.
type Portfolio struct {
	Stocks     map[string]float64 `json:"stocks"`
	Bonds      float64            `json:"bonds"`
	Cash       float64            `json:"cash"`
	RealEstate float64            `json:"real_estate"`
	Crypto     float64            `json:"crypto"`
}

// TotalValue sums all holdings.
func (pf *Portfolio) TotalValue() float64 {
	total := pf.Bonds + pf.Cash + pf.RealEstate + pf.Crypto
	for _, amount := range pf.Stocks {
		total += amount
	}
	return total
}

// StockValue sums the stock holdings only.
func (pf *Portfolio) StockValue() float64 {
	total := 0.0
	for _, amount := range pf.Stocks {
		total += amount
	}
	return total
}

// StockSymbols returns the stock symbols in deterministic (sorted) order.
func (pf *Portfolio) StockSymbols() []string {
	symbols := make([]string, 0, len(pf.Stocks))
	for symbol := range pf.Stocks {
		symbols = append(symbols, symbol)
	}
	sortStrings(symbols)
	return symbols
}

// GoalPriority orders goals for budget allocation.
type GoalPriority string

// Goal priorities
const (
	PriorityHigh   GoalPriority = "High"
	PriorityMedium GoalPriority = "Medium"
	PriorityLow    GoalPriority = "Low"
)

// Rank returns the numeric priority used for sorting (higher funds first).
func (p GoalPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 2 // unknown priorities sort as Medium
}

// Goal is a savings target the user wants to reach.
type Goal struct {
	Name          string       `json:"goal_name"`
	TargetAmount  float64      `json:"target_amount"`
	TimelineYears float64      `json:"timeline_years"`
	Priority      GoalPriority `json:"priority"`

	// MonthlySavingsNeeded is derived by the goal planner and consumed by
	// the multi-goal optimizer.
	MonthlySavingsNeeded float64 `json:"monthly_savings_needed,omitempty"`
}

// ProductRiskLevel is the ordered five-level risk scale for catalog products.
type ProductRiskLevel string

// Product risk levels, lowest to highest
const (
	ProductRiskVeryLow      ProductRiskLevel = "Very Low"
	ProductRiskLow          ProductRiskLevel = "Low"
	ProductRiskModerate     ProductRiskLevel = "Moderate"
	ProductRiskModerateHigh ProductRiskLevel = "Moderate-High"
	ProductRiskHigh         ProductRiskLevel = "High"
)

// riskLevelOrder fixes the ordering of the five-level scale.
var riskLevelOrder = []ProductRiskLevel{
	ProductRiskVeryLow,
	ProductRiskLow,
	ProductRiskModerate,
	ProductRiskModerateHigh,
	ProductRiskHigh,
}

// Index returns the position of the level on the ordered scale, or -1 for
// unknown levels.
func (l ProductRiskLevel) Index() int {
	for i, level := range riskLevelOrder {
		if level == l {
			return i
		}
	}
	return -1
}

// Distance returns the absolute distance between two levels on the ordered
// scale. Unknown levels are treated as maximally distant.
func (l ProductRiskLevel) Distance(other ProductRiskLevel) int {
	a, b := l.Index(), other.Index()
	if a < 0 || b < 0 {
		return len(riskLevelOrder)
	}
	if a > b {
		return a - b
	}
	return b - a
}

// Product is a static catalog entry. Catalog entries are reference data:
// loaded once at startup and never mutated at runtime.
type Product struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	RiskLevel     ProductRiskLevel `json:"risk_level"`
	ExpenseRatio  float64          `json:"expense_ratio"`
	Description   string           `json:"description"`
	MinInvestment float64          `json:"min_investment"`
	Liquidity     string           `json:"liquidity"`
}

// HealthComponent is one scored component of the financial health score.
// The detail fields are populated per component: Percentage for the ratio
// components, Months for the emergency fund, CurrentRisk/TargetRisk for the
// risk alignment, NumGoals for goal setting, Status for employment.
type HealthComponent struct {
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage,omitempty"`
	Months      float64 `json:"months,omitempty"`
	CurrentRisk string  `json:"current_risk,omitempty"`
	TargetRisk  string  `json:"target_risk,omitempty"`
	NumGoals    int     `json:"num_goals,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// HealthRating buckets the overall health score percentage.
type HealthRating string

// Health ratings
const (
	RatingExcellent        HealthRating = "Excellent"
	RatingGood             HealthRating = "Good"
	RatingFair             HealthRating = "Fair"
	RatingNeedsImprovement HealthRating = "Needs Improvement"
	RatingPoor             HealthRating = "Poor"
)

// FinancialHealthScore is the weighted component breakdown of a profile's
// financial health, computed fresh on every call.
type FinancialHealthScore struct {
	OverallScore    float64                    `json:"overall_score"`
	Rating          HealthRating               `json:"rating"`
	TotalPoints     float64                    `json:"total_points"`
	MaxPoints       float64                    `json:"max_points"`
	Components      map[string]HealthComponent `json:"components"`
	Recommendations []string                   `json:"recommendations"`
}

func sortStrings(values []string) {
	// Insertion sort keeps the domain package dependency-free; symbol
	// lists are tiny.
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
