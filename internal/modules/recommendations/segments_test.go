package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

func clusterProfile(age int, income, savings, debt float64, tolerance domain.RiskTolerance, experience domain.InvestmentExperience) *domain.UserProfile {
	return &domain.UserProfile{
		Age:                  age,
		AnnualIncome:         income,
		MonthlySavings:       savings,
		DebtAmount:           debt,
		RiskTolerance:        tolerance,
		InvestmentExperience: experience,
	}
}

// Two clearly separated populations: young aggressive earners and older
// conservative savers. Five profiles yield two clusters.
func clusterPopulation() []*domain.UserProfile {
	return []*domain.UserProfile{
		clusterProfile(25, 90000, 2000, 5000, domain.RiskAggressive, domain.ExperienceAdvanced),
		clusterProfile(27, 95000, 2200, 4000, domain.RiskAggressive, domain.ExperienceAdvanced),
		clusterProfile(26, 88000, 1900, 6000, domain.RiskAggressive, domain.ExperienceIntermediate),
		clusterProfile(58, 40000, 300, 1000, domain.RiskConservative, domain.ExperienceBeginner),
		clusterProfile(61, 42000, 350, 500, domain.RiskConservative, domain.ExperienceBeginner),
	}
}

func TestGenerateUserSegmentsRequiresFiveProfiles(t *testing.T) {
	engine := newTestEngine(t)

	small := clusterPopulation()[:4]
	assert.Nil(t, engine.GenerateUserSegments(small))
}

func TestGenerateUserSegmentsIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	population := clusterPopulation()
	first := engine.GenerateUserSegments(population)
	second := engine.GenerateUserSegments(population)

	require.Len(t, first, len(population))
	assert.Equal(t, first, second)
}

func TestGenerateUserSegmentsSeparatesDistinctGroups(t *testing.T) {
	engine := newTestEngine(t)

	segments := engine.GenerateUserSegments(clusterPopulation())
	require.Len(t, segments, 5)

	// Members of the same population group land in the same cluster.
	assert.Equal(t, segments[0], segments[1])
	assert.Equal(t, segments[0], segments[2])
	assert.Equal(t, segments[3], segments[4])
	assert.NotEqual(t, segments[0], segments[3])
}

func TestFindSimilarUsersAppliesThreshold(t *testing.T) {
	engine := newTestEngine(t)

	target := clusterProfile(26, 92000, 2100, 5000, domain.RiskAggressive, domain.ExperienceAdvanced)
	population := clusterPopulation()

	similar := engine.FindSimilarUsers(target, population)
	require.NotEmpty(t, similar)
	for _, p := range similar {
		assert.Greater(t, cosineSimilarity(featureVector(target), featureVector(p)), 0.8)
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 0, 0}
	assert.InDelta(t, 1.0, cosineSimilarity(a, []float64{2, 0, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity(a, []float64{0, 3, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity(a, []float64{0, 0, 0}), 1e-9)
}

func TestCollaborativeFallsBackOnSmallPopulation(t *testing.T) {
	engine := newTestEngine(t)

	target := aggressiveProfile()
	direct, err := engine.Investment(target)
	require.NoError(t, err)

	collaborative, err := engine.Collaborative(target, clusterPopulation()[:3])
	require.NoError(t, err)

	assert.Equal(t, direct, collaborative)
}

func TestCollaborativeAdoptsConsensusTolerance(t *testing.T) {
	engine := newTestEngine(t)

	// Raw feature vectors are dominated by income, so all five population
	// members clear the similarity threshold. The aggressive group is the
	// majority and sets the consensus tolerance for this Moderate target.
	target := clusterProfile(40, 70000, 1000, 3000, domain.RiskModerate, domain.ExperienceIntermediate)
	population := clusterPopulation()

	collaborative, err := engine.Collaborative(target, population)
	require.NoError(t, err)

	composite := *target
	composite.RiskTolerance = domain.RiskAggressive
	expected, err := engine.Investment(&composite)
	require.NoError(t, err)

	assert.Equal(t, expected, collaborative)
}
