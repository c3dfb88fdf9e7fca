// Package insights produces quick textual insights and risk assessments
// from a user profile, without touching market data.
package insights

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
)

// QuickInsights returns short observations on savings rate, debt burden,
// emergency fund coverage and age-appropriate strategy, in that order.
func QuickInsights(p *domain.UserProfile) []string {
	insights := []string{}

	savingsRate := p.SavingsRate() * 100
	switch {
	case savingsRate < 10:
		insights = append(insights, fmt.Sprintf(
			"💡 Your current savings rate is %.1f%%. Consider aiming for at least 10-15%% of your income.", savingsRate))
	case savingsRate < 20:
		insights = append(insights, fmt.Sprintf(
			"✅ Good job! Your savings rate of %.1f%% is on track. Consider increasing to 20%% if possible.", savingsRate))
	default:
		insights = append(insights, fmt.Sprintf(
			"🌟 Excellent! Your savings rate of %.1f%% puts you ahead of most people.", savingsRate))
	}

	debtToIncome := p.DebtToIncome() * 100
	switch {
	case debtToIncome > 40:
		insights = append(insights, fmt.Sprintf(
			"⚠️ Your debt-to-income ratio is %.1f%%. Focus on debt reduction as a priority.", debtToIncome))
	case debtToIncome > 20:
		insights = append(insights, fmt.Sprintf(
			"📊 Your debt-to-income ratio is %.1f%%. Consider a debt reduction strategy.", debtToIncome))
	default:
		insights = append(insights, fmt.Sprintf(
			"✅ Your debt levels are manageable at %.1f%% of income.", debtToIncome))
	}

	monthlyExpenses := p.MonthlyExpenses()
	emergencyMonths := 0.0
	if monthlyExpenses > 0 {
		emergencyMonths = p.MonthlySavings * 3 / monthlyExpenses
	}
	if emergencyMonths < 3 {
		insights = append(insights,
			"🚨 Build an emergency fund covering 3-6 months of expenses as your first priority.")
	} else if emergencyMonths < 6 {
		insights = append(insights,
			"💪 You're building a good emergency fund. Aim for 6 months of expenses.")
	}

	switch {
	case p.Age < 30:
		insights = append(insights,
			"🚀 You have time on your side! Focus on aggressive growth investments and building good financial habits.")
	case p.Age < 50:
		insights = append(insights,
			"⚖️ Balance growth and stability in your investment approach as you advance in your career.")
	default:
		insights = append(insights,
			"🎯 Focus on capital preservation and income generation as you approach or enter retirement.")
	}

	return insights
}
