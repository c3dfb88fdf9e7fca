package recommendations

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
)

// InsuranceProduct describes a recommended insurance policy.
type InsuranceProduct struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	CoverageAmount float64 `json:"coverage_amount"`
	EstimatedCost  string  `json:"estimated_cost"`
}

// InsuranceRecommendation is one insurance suggestion with its priority.
type InsuranceRecommendation struct {
	Product   InsuranceProduct `json:"product"`
	Reasoning []string         `json:"reasoning"`
	Priority  string           `json:"priority"`
}

// InsuranceRecommendations is the full insurance recommendation response.
type InsuranceRecommendations struct {
	Recommendations  []InsuranceRecommendation `json:"recommendations"`
	CoverageGaps     []string                  `json:"coverage_gaps"`
	CostOptimization []string                  `json:"cost_optimization"`
}

// Insurance recommends life and disability coverage based on age, income,
// debt and employment.
func (e *Engine) Insurance(p *domain.UserProfile) *InsuranceRecommendations {
	recommendations := []InsuranceRecommendation{}

	// Term life: income replacement plus outstanding debt.
	lifeInsuranceNeed := p.AnnualIncome*10 + p.DebtAmount
	if p.Age < 40 {
		priority := "Medium"
		if p.DebtAmount > 0 || p.HasGoal("Home Purchase") {
			priority = "High"
		}
		recommendations = append(recommendations, InsuranceRecommendation{
			Product: InsuranceProduct{
				Name:           "Term Life Insurance (20-30 years)",
				Type:           "Life Insurance",
				CoverageAmount: lifeInsuranceNeed,
				EstimatedCost:  fmt.Sprintf("$%.0f/month", lifeInsuranceNeed/1000*1.5),
			},
			Reasoning: []string{
				"Most cost-effective at your age",
				"Covers income replacement needs",
				"Protects family from debt burden",
			},
			Priority: priority,
		})
	}

	if p.EmploymentStatus == domain.EmploymentEmployed && p.AnnualIncome > 30000 {
		recommendations = append(recommendations, InsuranceRecommendation{
			Product: InsuranceProduct{
				Name:           "Long-Term Disability Insurance",
				Type:           "Disability Insurance",
				CoverageAmount: p.AnnualIncome * 0.6,
				EstimatedCost:  fmt.Sprintf("$%.0f/month", p.AnnualIncome*0.02/12),
			},
			Reasoning: []string{
				"Protects future earning capacity",
				"More likely to become disabled than die",
				"Employer coverage may be insufficient",
			},
			Priority: "High",
		})
	}

	return &InsuranceRecommendations{
		Recommendations:  recommendations,
		CoverageGaps:     coverageGaps(p),
		CostOptimization: costOptimization(p),
	}
}

// coverageGaps flags likely holes in the user's insurance coverage.
func coverageGaps(p *domain.UserProfile) []string {
	gaps := []string{}

	if p.EmploymentStatus != domain.EmploymentEmployed {
		gaps = append(gaps, "Health insurance may not be employer-provided")
	}
	if p.Age > 30 && p.AnnualIncome > 50000 {
		gaps = append(gaps, "Consider umbrella liability insurance for asset protection")
	}
	if p.HasGoal("Home Purchase") {
		gaps = append(gaps, "Will need homeowners insurance when purchasing property")
	}

	return gaps
}

// costOptimization lists premium-saving tactics.
func costOptimization(p *domain.UserProfile) []string {
	tips := []string{
		"Bundle auto and home insurance for discounts",
		"Increase deductibles to lower premiums",
		"Shop around annually for better rates",
		"Maintain good credit score for better rates",
		"Consider term life insurance over whole life for most people",
	}

	if p.Age < 35 {
		tips = append(tips, "Lock in term life insurance rates while young and healthy")
	}

	return tips
}
