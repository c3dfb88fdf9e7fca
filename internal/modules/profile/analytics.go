package profile

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Demographics summarizes the age distribution of a profile population.
type Demographics struct {
	AvgAge    float64 `json:"avg_age"`
	AgeRange  string  `json:"age_range"`
	MedianAge int     `json:"median_age"`
}

// FinancialMetrics summarizes income and savings across profiles.
type FinancialMetrics struct {
	AvgIncome         float64 `json:"avg_income"`
	MedianIncome      float64 `json:"median_income"`
	IncomeRange       string  `json:"income_range"`
	AvgMonthlySavings float64 `json:"avg_monthly_savings"`
}

// GoalCount is one entry of the most-common-goals ranking.
type GoalCount struct {
	Goal  string `json:"goal"`
	Count int    `json:"count"`
}

// Analytics aggregates statistics across a set of user profiles.
type Analytics struct {
	TotalUsers       int               `json:"total_users"`
	Demographics     *Demographics     `json:"demographics,omitempty"`
	FinancialMetrics *FinancialMetrics `json:"financial_metrics,omitempty"`
	RiskDistribution map[string]string `json:"risk_distribution"`
	GoalAnalysis     []GoalCount       `json:"goal_analysis"`
}

// Analyze computes population analytics over the given profiles. Returns nil
// when the slice is empty.
func Analyze(profiles []*domain.UserProfile) *Analytics {
	if len(profiles) == 0 {
		return nil
	}

	analytics := &Analytics{
		TotalUsers:       len(profiles),
		RiskDistribution: make(map[string]string),
		GoalAnalysis:     []GoalCount{},
	}

	var ages []float64
	var incomes []float64
	var savings []float64
	for _, p := range profiles {
		if p.Age > 0 {
			ages = append(ages, float64(p.Age))
		}
		if p.AnnualIncome > 0 {
			incomes = append(incomes, p.AnnualIncome)
		}
		if p.MonthlySavings > 0 {
			savings = append(savings, p.MonthlySavings)
		}
	}

	if len(ages) > 0 {
		sorted := append([]float64(nil), ages...)
		sort.Float64s(sorted)
		analytics.Demographics = &Demographics{
			AvgAge:    formulas.Round1(formulas.Mean(ages)),
			AgeRange:  fmt.Sprintf("%d-%d", int(sorted[0]), int(sorted[len(sorted)-1])),
			MedianAge: int(sorted[len(sorted)/2]),
		}
	}

	if len(incomes) > 0 {
		sorted := append([]float64(nil), incomes...)
		sort.Float64s(sorted)
		metrics := &FinancialMetrics{
			AvgIncome:    math.Round(formulas.Mean(incomes)),
			MedianIncome: sorted[len(sorted)/2],
			IncomeRange:  fmt.Sprintf("%s - %s", formatUSD(sorted[0]), formatUSD(sorted[len(sorted)-1])),
		}
		if len(savings) > 0 {
			metrics.AvgMonthlySavings = math.Round(formulas.Mean(savings))
		}
		analytics.FinancialMetrics = metrics
	}

	riskCounts := make(map[string]int)
	for _, p := range profiles {
		risk := string(p.RiskTolerance)
		if risk == "" {
			risk = "Unknown"
		}
		riskCounts[risk]++
	}
	for risk, count := range riskCounts {
		analytics.RiskDistribution[risk] = fmt.Sprintf("%d (%.1f%%)",
			count, float64(count)/float64(len(profiles))*100)
	}

	goalCounts := make(map[string]int)
	for _, p := range profiles {
		for _, goal := range p.FinancialGoals {
			goalCounts[goal]++
		}
	}
	for goal, count := range goalCounts {
		analytics.GoalAnalysis = append(analytics.GoalAnalysis, GoalCount{Goal: goal, Count: count})
	}
	sort.SliceStable(analytics.GoalAnalysis, func(i, j int) bool {
		if analytics.GoalAnalysis[i].Count != analytics.GoalAnalysis[j].Count {
			return analytics.GoalAnalysis[i].Count > analytics.GoalAnalysis[j].Count
		}
		return analytics.GoalAnalysis[i].Goal < analytics.GoalAnalysis[j].Goal
	})
	if len(analytics.GoalAnalysis) > 5 {
		analytics.GoalAnalysis = analytics.GoalAnalysis[:5]
	}

	return analytics
}

// formatUSD renders a dollar amount with thousands separators, e.g. "$45,000".
func formatUSD(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	if negative {
		return "-$" + string(grouped)
	}
	return "$" + string(grouped)
}
