package recommendations

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

// ProductRecommendation is one scored product suggestion.
type ProductRecommendation struct {
	Product              domain.Product `json:"product"`
	Score                float64        `json:"score"`
	Reasoning            []string       `json:"reasoning"`
	AllocationSuggestion string         `json:"allocation_suggestion"`
	GoalSpecific         bool           `json:"goal_specific,omitempty"`
}

// PortfolioSuggestions is the overall allocation guidance attached to
// investment recommendations.
type PortfolioSuggestions struct {
	AssetAllocation     map[string]float64 `json:"asset_allocation"`
	DiversificationTips []string           `json:"diversification_tips"`
	ImplementationOrder []string           `json:"implementation_order"`
}

// InvestmentRecommendations is the full investment recommendation response.
type InvestmentRecommendations struct {
	Recommendations      []ProductRecommendation `json:"recommendations"`
	PortfolioSuggestions *PortfolioSuggestions   `json:"portfolio_suggestions"`
	NextSteps            []string                `json:"next_steps"`
}

// Engine produces personalized product recommendations from the catalog.
type Engine struct {
	catalog *CatalogRepository
	log     zerolog.Logger
}

// NewEngine creates a new recommendation engine.
func NewEngine(catalog *CatalogRepository, log zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		log:     log.With().Str("module", "recommendations").Logger(),
	}
}

// Investment scores the profile's risk tolerance bucket, returns the top
// three products with reasoning and allocation suggestions, appends
// goal-specific overlays, and attaches portfolio suggestions and next steps.
func (e *Engine) Investment(p *domain.UserProfile) (*InvestmentRecommendations, error) {
	products, err := e.catalog.ProductsForTolerance(p.RiskTolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	scored := make([]ProductRecommendation, 0, len(products))
	for _, product := range products {
		scored = append(scored, ProductRecommendation{
			Product:              product,
			Score:                ProductScore(&product, p),
			Reasoning:            productReasoning(&product, p),
			AllocationSuggestion: suggestAllocation(&product, p),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > 3 {
		scored = scored[:3]
	}
	scored = append(scored, goalSpecificRecommendations(p)...)

	return &InvestmentRecommendations{
		Recommendations:      scored,
		PortfolioSuggestions: portfolioSuggestions(p),
		NextSteps:            nextSteps(p),
	}, nil
}

// ProductScore rates a product's fit for the profile on a 0-100 scale.
// Starting from a base of 50, risk alignment dominates (+20 exact, +10
// adjacent, -10 otherwise), with smaller adjustments for experience fit,
// age appropriateness and cost/accessibility.
func ProductScore(product *domain.Product, p *domain.UserProfile) float64 {
	score := 50.0

	expected := expectedRiskLevel(p.RiskTolerance)
	distance := product.RiskLevel.Distance(expected)
	switch {
	case distance == 0:
		score += 20
	case distance <= 1:
		score += 10
	default:
		score -= 10
	}

	if p.InvestmentExperience == domain.ExperienceBeginner &&
		(product.Type == "Target Date Fund" || product.Type == "Stock ETF" || product.Type == "Bond ETF") {
		score += 15
	} else if p.InvestmentExperience == domain.ExperienceAdvanced &&
		(product.Type == "Growth Stock ETF" || product.Type == "Small-Cap ETF") {
		score += 10
	}

	if p.Age < 30 && (product.RiskLevel == domain.ProductRiskModerateHigh || product.RiskLevel == domain.ProductRiskHigh) {
		score += 10
	} else if p.Age > 50 && (product.RiskLevel == domain.ProductRiskLow || product.RiskLevel == domain.ProductRiskModerate) {
		score += 10
	}

	if p.AnnualIncome < 50000 && product.MinInvestment <= 100 {
		score += 5
	} else if p.AnnualIncome > 100000 && product.ExpenseRatio < 0.1 {
		score += 5
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// expectedRiskLevel maps the three tolerance levels onto the five-level
// product risk scale.
func expectedRiskLevel(tolerance domain.RiskTolerance) domain.ProductRiskLevel {
	switch tolerance {
	case domain.RiskConservative:
		return domain.ProductRiskLow
	case domain.RiskAggressive:
		return domain.ProductRiskHigh
	default:
		return domain.ProductRiskModerate
	}
}

// productReasoning explains why a product suits the profile.
func productReasoning(product *domain.Product, p *domain.UserProfile) []string {
	reasons := []string{}

	if p.RiskTolerance == domain.RiskConservative && product.RiskLevel == domain.ProductRiskLow {
		reasons = append(reasons, "Matches your conservative risk tolerance")
	} else if p.RiskTolerance == domain.RiskAggressive && product.RiskLevel == domain.ProductRiskHigh {
		reasons = append(reasons, "Aligns with your aggressive investment approach")
	}

	if product.ExpenseRatio <= 0.05 {
		reasons = append(reasons, "Very low expense ratio helps maximize returns")
	}
	if product.Liquidity == "High" {
		reasons = append(reasons, "High liquidity provides flexibility")
	}
	if p.InvestmentExperience == domain.ExperienceBeginner &&
		(product.Type == "Target Date Fund" || product.Type == "Stock ETF") {
		reasons = append(reasons, "Good for beginning investors")
	}

	if p.Age < 35 && (product.RiskLevel == domain.ProductRiskModerateHigh || product.RiskLevel == domain.ProductRiskHigh) {
		reasons = append(reasons, "Suitable for your age and long investment horizon")
	} else if p.Age > 50 && (product.RiskLevel == domain.ProductRiskLow || product.RiskLevel == domain.ProductRiskModerate) {
		reasons = append(reasons, "Conservative approach appropriate as you near retirement")
	}

	return reasons
}

// suggestAllocation proposes a portfolio share for the product type.
func suggestAllocation(product *domain.Product, p *domain.UserProfile) string {
	switch product.Type {
	case "Target Date Fund":
		return "50-70% of portfolio (core holding)"
	case "Stock ETF":
		switch p.RiskTolerance {
		case domain.RiskConservative:
			return "20-40% of portfolio"
		case domain.RiskModerate:
			return "40-60% of portfolio"
		default:
			return "60-80% of portfolio"
		}
	case "Bond ETF":
		// Age-in-bonds rule, capped at 40%.
		bondAllocation := p.Age
		if bondAllocation > 40 {
			bondAllocation = 40
		}
		return fmt.Sprintf("%d-%d%% of portfolio", bondAllocation-10, bondAllocation+10)
	case "Cash Equivalent":
		return "5-15% of portfolio (emergency fund)"
	default:
		return "5-20% of portfolio (satellite holding)"
	}
}

// goalSpecificRecommendations adds overlays for goals with dedicated
// product guidance.
func goalSpecificRecommendations(p *domain.UserProfile) []ProductRecommendation {
	overlays := []ProductRecommendation{}

	for _, goal := range p.FinancialGoals {
		switch goal {
		case "Emergency Fund":
			overlays = append(overlays, ProductRecommendation{
				Product: domain.Product{
					Name:        "High-Yield Savings Account",
					Type:        "Cash Equivalent",
					RiskLevel:   domain.ProductRiskVeryLow,
					Description: "FDIC insured emergency fund",
				},
				Reasoning:            []string{"Essential for financial security", "Immediate access to funds"},
				AllocationSuggestion: "3-6 months of expenses",
				GoalSpecific:         true,
			})
		case "Retirement Planning":
			overlays = append(overlays, ProductRecommendation{
				Product: domain.Product{
					Name:        "401(k) or IRA Contributions",
					Type:        "Retirement Account",
					RiskLevel:   "Varies",
					Description: "Tax-advantaged retirement savings",
				},
				Reasoning:            []string{"Tax benefits", "Employer matching", "Long-term growth"},
				AllocationSuggestion: "10-15% of income minimum",
				GoalSpecific:         true,
			})
		case "Home Purchase":
			overlays = append(overlays, ProductRecommendation{
				Product: domain.Product{
					Name:        "Conservative Investment Mix",
					Type:        "Mixed Portfolio",
					RiskLevel:   "Low-Moderate",
					Description: "Capital preservation for down payment",
				},
				Reasoning:            []string{"Capital preservation", "Liquidity for purchase"},
				AllocationSuggestion: "70% bonds, 30% stocks",
				GoalSpecific:         true,
			})
		}
	}

	return overlays
}

// portfolioSuggestions derives an overall stock/bond split from age and
// tolerance, with fixed satellite allocations.
func portfolioSuggestions(p *domain.UserProfile) *PortfolioSuggestions {
	var stockAllocation float64
	switch p.RiskTolerance {
	case domain.RiskConservative:
		stockAllocation = maxFloat(30, float64(70-p.Age))
	case domain.RiskAggressive:
		stockAllocation = maxFloat(60, float64(120-p.Age))
	default:
		stockAllocation = maxFloat(40, float64(100-p.Age))
	}
	bondAllocation := minFloat(60, 100-stockAllocation)

	return &PortfolioSuggestions{
		AssetAllocation: map[string]float64{
			"stocks":       stockAllocation,
			"bonds":        bondAllocation,
			"alternatives": 5,
			"cash":         5,
		},
		DiversificationTips: []string{
			"Include both domestic and international exposure",
			"Consider small-cap and large-cap stocks",
			"Include both growth and value styles",
			"Rebalance quarterly or when allocations drift >5%",
		},
		ImplementationOrder: []string{
			"1. Build emergency fund (3-6 months expenses)",
			"2. Maximize employer 401(k) match",
			"3. Pay off high-interest debt",
			"4. Build diversified portfolio",
			"5. Consider tax-loss harvesting",
		},
	}
}

// nextSteps lists actionable steps, front-loaded with fixes for missing
// savings or heavy debt.
func nextSteps(p *domain.UserProfile) []string {
	steps := []string{}

	if p.MonthlySavings == 0 {
		steps = append(steps, "Start by setting up automatic savings of at least 10% of income")
	}
	if p.DebtAmount > p.AnnualIncome*0.3 {
		steps = append(steps, "Focus on paying down high-interest debt before aggressive investing")
	}

	steps = append(steps,
		"Open a high-yield savings account for emergency fund",
		"Research low-cost brokerages (Vanguard, Fidelity, Schwab)",
		"Start with target-date funds or broad market ETFs",
		"Set up automatic investing to dollar-cost average",
	)

	return steps
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
