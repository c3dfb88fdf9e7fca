package profile

import (
	"fmt"
	"math"

	"github.com/aristath/advisor/internal/domain"
)

// Comparison highlights what two profiles have in common and where they
// diverge.
type Comparison struct {
	Similarities    []string `json:"similarities"`
	Differences     []string `json:"differences"`
	Recommendations []string `json:"recommendations"`
}

// Compare contrasts two profiles on age, income and risk tolerance and
// suggests whether shared or individual recommendations fit better.
func Compare(a, b *domain.UserProfile) *Comparison {
	comparison := &Comparison{
		Similarities:    []string{},
		Differences:     []string{},
		Recommendations: []string{},
	}

	ageDiff := int(math.Abs(float64(a.Age - b.Age)))
	if ageDiff <= 5 {
		comparison.Similarities = append(comparison.Similarities,
			fmt.Sprintf("Similar age group (within %d years)", ageDiff))
	} else {
		comparison.Differences = append(comparison.Differences,
			fmt.Sprintf("Different age groups (%d years apart)", ageDiff))
	}

	incomeDiff := math.Abs(a.AnnualIncome - b.AnnualIncome)
	incomePctDiff := incomeDiff / math.Max(math.Max(a.AnnualIncome, b.AnnualIncome), 1) * 100
	if incomePctDiff <= 20 {
		comparison.Similarities = append(comparison.Similarities, "Similar income levels")
	} else {
		comparison.Differences = append(comparison.Differences,
			fmt.Sprintf("Different income levels (%.0f%% difference)", incomePctDiff))
	}

	if a.RiskTolerance == b.RiskTolerance {
		comparison.Similarities = append(comparison.Similarities, "Same risk tolerance")
	} else {
		comparison.Differences = append(comparison.Differences, "Different risk tolerance levels")
	}

	if len(comparison.Similarities) > len(comparison.Differences) {
		comparison.Recommendations = append(comparison.Recommendations,
			"These profiles are quite similar - collaborative recommendations would be effective")
	} else {
		comparison.Recommendations = append(comparison.Recommendations,
			"These profiles have significant differences - personalized recommendations are more appropriate")
	}

	return comparison
}
