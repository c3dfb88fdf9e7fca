package domain

import (
	"fmt"
	"strings"
)

// Summary renders a human-readable plain-text profile summary with labeled
// sections: personal info, financial details, investment profile, goals,
// and timestamps.
func (p *UserProfile) Summary() string {
	var b strings.Builder

	b.WriteString("Financial Profile Summary\n")
	b.WriteString("========================\n\n")

	b.WriteString("Personal Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNA(p.Name))
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Employment: %s\n\n", orNA(string(p.EmploymentStatus)))

	b.WriteString("Financial Details:\n")
	fmt.Fprintf(&b, "- Annual Income: $%.2f\n", p.AnnualIncome)
	fmt.Fprintf(&b, "- Monthly Savings: $%.2f\n", p.MonthlySavings)
	fmt.Fprintf(&b, "- Total Debt: $%.2f\n", p.DebtAmount)
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n\n", p.SavingsRate()*100)

	b.WriteString("Investment Profile:\n")
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", orNA(string(p.RiskTolerance)))
	fmt.Fprintf(&b, "- Investment Experience: %s\n\n", orNA(string(p.InvestmentExperience)))

	b.WriteString("Financial Goals:\n")
	if len(p.FinancialGoals) == 0 {
		b.WriteString("- No goals defined\n")
	} else {
		for _, goal := range p.FinancialGoals {
			fmt.Fprintf(&b, "- %s\n", goal)
		}
	}

	fmt.Fprintf(&b, "\nProfile Created: %s\n", orNA(p.CreatedDate))
	fmt.Fprintf(&b, "Last Updated: %s", orNA(p.LastUpdated))

	return b.String()
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
