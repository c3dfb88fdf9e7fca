package recommendations

import (
	"sort"

	"github.com/aristath/advisor/internal/domain"
)

// PriorityItem is one entry of the financial priority matrix.
type PriorityItem struct {
	Item     string `json:"item"`
	Priority string `json:"priority"`
	Timeline string `json:"timeline"`
}

// ComprehensiveRecommendations bundles investment and insurance advice with
// a priority matrix and a phased action plan.
type ComprehensiveRecommendations struct {
	InvestmentRecommendations *InvestmentRecommendations `json:"investment_recommendations"`
	InsuranceRecommendations  *InsuranceRecommendations  `json:"insurance_recommendations"`
	PriorityMatrix            []PriorityItem             `json:"priority_matrix"`
	ActionPlan                map[string][]string        `json:"action_plan"`
}

// Comprehensive combines investment and insurance recommendations with
// planning guidance.
func (e *Engine) Comprehensive(p *domain.UserProfile) (*ComprehensiveRecommendations, error) {
	investment, err := e.Investment(p)
	if err != nil {
		return nil, err
	}

	return &ComprehensiveRecommendations{
		InvestmentRecommendations: investment,
		InsuranceRecommendations:  e.Insurance(p),
		PriorityMatrix:            priorityMatrix(p),
		ActionPlan:                actionPlan(),
	}, nil
}

// priorityMatrix ranks the user's financial to-dos, Critical first.
func priorityMatrix(p *domain.UserProfile) []PriorityItem {
	priorities := []PriorityItem{}

	// Roughly three months of expenses, treating a quarter of income as the
	// reference spending level.
	if p.MonthlySavings*6 < p.AnnualIncome/4 {
		priorities = append(priorities, PriorityItem{
			Item: "Emergency Fund", Priority: "Critical", Timeline: "Immediate",
		})
	}
	if p.DebtAmount > p.AnnualIncome*0.3 {
		priorities = append(priorities, PriorityItem{
			Item: "Debt Reduction", Priority: "High", Timeline: "1-2 years",
		})
	}

	priorities = append(priorities,
		PriorityItem{Item: "Basic Insurance Coverage", Priority: "High", Timeline: "Within 3 months"},
		PriorityItem{Item: "Retirement Contributions", Priority: "Medium", Timeline: "Ongoing"},
		PriorityItem{Item: "Investment Portfolio", Priority: "Medium", Timeline: "6-12 months"},
	)

	rank := map[string]int{"Critical": 0, "High": 1, "Medium": 2, "Low": 3}
	sort.SliceStable(priorities, func(i, j int) bool {
		return rank[priorities[i].Priority] < rank[priorities[j].Priority]
	})

	return priorities
}

// actionPlan is the fixed phased checklist for getting finances in order.
func actionPlan() map[string][]string {
	return map[string][]string{
		"month_1": {
			"Open high-yield savings account",
			"Set up automatic savings transfer",
			"Research insurance needs and get quotes",
		},
		"month_2": {
			"Purchase necessary insurance coverage",
			"Create budget and expense tracking system",
			"Research investment account options",
		},
		"month_3": {
			"Open investment account with low-cost provider",
			"Set up automatic investment contributions",
			"Begin building emergency fund",
		},
		"month_6": {
			"Review and rebalance investment portfolio",
			"Assess progress toward financial goals",
			"Consider increasing savings rate",
		},
		"annually": {
			"Review insurance coverage and needs",
			"Rebalance investment portfolio",
			"Update financial goals and plans",
			"Tax planning and optimization",
		},
	}
}
