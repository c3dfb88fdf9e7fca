package profile

import "github.com/aristath/advisor/internal/domain"

// User segments for targeted recommendations.
const (
	SegmentYoungProfessional  = "Young Professional"
	SegmentConservativeSaver  = "Conservative Saver"
	SegmentAggressiveInvestor = "Aggressive Investor"
	SegmentPreRetirement      = "Pre-Retirement"
	SegmentFamilyFocused      = "Family Focused"
	SegmentBalancedInvestor   = "Balanced Investor"
)

// Segment categorizes a profile into one of the fixed user segments. The
// rules are checked in priority order; the first match wins.
func Segment(p *domain.UserProfile) string {
	switch {
	case p.Age < 35 && p.AnnualIncome > 80000:
		return SegmentYoungProfessional
	case p.RiskTolerance == domain.RiskConservative || p.InvestmentExperience == domain.ExperienceBeginner:
		return SegmentConservativeSaver
	case p.RiskTolerance == domain.RiskAggressive &&
		(p.InvestmentExperience == domain.ExperienceIntermediate || p.InvestmentExperience == domain.ExperienceAdvanced):
		return SegmentAggressiveInvestor
	case p.Age >= 50:
		return SegmentPreRetirement
	case p.HasGoal("Home Purchase") || p.HasGoal("Education"):
		return SegmentFamilyFocused
	default:
		return SegmentBalancedInvestor
	}
}
