package goals

import (
	"fmt"
	"sort"

	"github.com/aristath/advisor/internal/domain"
)

// Funding statuses of an allocation plan entry.
const (
	StatusFullyFunded     = "Fully Funded"
	StatusPartiallyFunded = "Partially Funded"
	StatusUnfunded        = "Unfunded"
)

// AllocationEntry is one goal's share of the monthly savings budget.
type AllocationEntry struct {
	Goal               string  `json:"goal"`
	AllocatedMonthly   float64 `json:"allocated_monthly"`
	PercentageOfBudget float64 `json:"percentage_of_budget"`
	Status             string  `json:"status"`
	FundingRatio       float64 `json:"funding_ratio,omitempty"`
}

// OptimizationResult is the savings allocation across all goals.
type OptimizationResult struct {
	AllocationPlan  []AllocationEntry `json:"allocation_plan"`
	TotalAllocated  float64           `json:"total_allocated"`
	RemainingBudget float64           `json:"remaining_budget"`
	Recommendations []string          `json:"recommendations"`
}

// OptimizeGoals allocates the profile's monthly savings across goals in a
// waterfall: goals are ordered by priority (high first), ties broken by
// shorter timeline, and each goal takes its full requirement until the
// budget runs out. The goals slice is not modified.
func (pl *Planner) OptimizeGoals(goals []domain.Goal, p *domain.UserProfile) *OptimizationResult {
	budget := p.MonthlySavings

	ordered := append([]domain.Goal(nil), goals...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority.Rank() != ordered[j].Priority.Rank() {
			return ordered[i].Priority.Rank() > ordered[j].Priority.Rank()
		}
		return ordered[i].TimelineYears < ordered[j].TimelineYears
	})

	plan := []AllocationEntry{}
	remaining := budget

	for _, goal := range ordered {
		required := goal.MonthlySavingsNeeded

		switch {
		case remaining >= required:
			entry := AllocationEntry{
				Goal:             goal.Name,
				AllocatedMonthly: required,
				Status:           StatusFullyFunded,
			}
			if budget > 0 {
				entry.PercentageOfBudget = required / budget * 100
			}
			plan = append(plan, entry)
			remaining -= required
		case remaining > 0:
			entry := AllocationEntry{
				Goal:             goal.Name,
				AllocatedMonthly: remaining,
				Status:           StatusPartiallyFunded,
			}
			if budget > 0 {
				entry.PercentageOfBudget = remaining / budget * 100
			}
			if required > 0 {
				entry.FundingRatio = remaining / required
			}
			plan = append(plan, entry)
			remaining = 0
		default:
			plan = append(plan, AllocationEntry{
				Goal:   goal.Name,
				Status: StatusUnfunded,
			})
		}
	}

	return &OptimizationResult{
		AllocationPlan:  plan,
		TotalAllocated:  budget - remaining,
		RemainingBudget: remaining,
		Recommendations: multiGoalRecommendations(plan, remaining),
	}
}

// multiGoalRecommendations summarizes the allocation outcome.
func multiGoalRecommendations(plan []AllocationEntry, remainingBudget float64) []string {
	recommendations := []string{}

	unfunded := 0
	partiallyFunded := 0
	for _, entry := range plan {
		switch entry.Status {
		case StatusUnfunded:
			unfunded++
		case StatusPartiallyFunded:
			partiallyFunded++
		}
	}

	if unfunded > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"You have %d unfunded goals. Consider increasing savings rate or extending timelines.", unfunded))
	}
	if partiallyFunded > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d goals are partially funded. Review priorities and consider adjusting target amounts or timelines.", partiallyFunded))
	}
	if remainingBudget > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"You have %s unused monthly savings capacity. Consider allocating to unfunded goals or increasing existing allocations.",
			formatBudget(remainingBudget)))
	}

	recommendations = append(recommendations,
		"Review and adjust goal priorities quarterly as your financial situation changes.",
		"Consider automating transfers to separate savings accounts for each goal.")

	return recommendations
}
