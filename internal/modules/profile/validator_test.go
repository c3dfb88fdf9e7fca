package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }

func validInput() *Input {
	return &Input{
		Name:                 strPtr("Alex Thompson"),
		Age:                  intPtr(28),
		AnnualIncome:         floatPtr(75000),
		EmploymentStatus:     strPtr("Employed"),
		RiskTolerance:        strPtr("Aggressive"),
		InvestmentExperience: strPtr("Intermediate"),
		MonthlySavings:       floatPtr(1200),
		DebtAmount:           floatPtr(25000),
		FinancialGoals:       []string{"Emergency Fund", "Retirement Planning"},
	}
}

func TestValidate_ValidInput(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.Validate(validInput()))
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	v := NewValidator()
	errs := v.Validate(&Input{})

	assert.Len(t, errs, len(requiredFields))
	assert.Contains(t, errs, "Missing required field: name")
	assert.Contains(t, errs, "Missing required field: age")
	assert.Contains(t, errs, "Missing required field: annual_income")
	assert.Contains(t, errs, "Missing required field: monthly_savings")
}

func TestValidate_EmptyStringField(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Name = strPtr("   ")

	errs := v.Validate(input)
	assert.Contains(t, errs, "Field 'name' cannot be empty")
}

func TestValidate_RangeChecks(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.Age = intPtr(17)
	assert.Contains(t, v.Validate(input), "Age must be between 18 and 100")

	input = validInput()
	input.Age = intPtr(101)
	assert.Contains(t, v.Validate(input), "Age must be between 18 and 100")

	input = validInput()
	input.AnnualIncome = floatPtr(-1)
	assert.Contains(t, v.Validate(input), "Annual income cannot be negative")

	input = validInput()
	input.MonthlySavings = floatPtr(-50)
	assert.Contains(t, v.Validate(input), "Monthly savings cannot be negative")

	input = validInput()
	input.DebtAmount = floatPtr(-10)
	assert.Contains(t, v.Validate(input), "Debt amount cannot be negative")
}

func TestValidate_EnumChecks(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.RiskTolerance = strPtr("Reckless")
	assert.Contains(t, v.Validate(input), "Risk tolerance must be Conservative, Moderate, or Aggressive")

	input = validInput()
	input.InvestmentExperience = strPtr("Expert")
	assert.Contains(t, v.Validate(input), "Investment experience must be Beginner, Intermediate, or Advanced")

	input = validInput()
	input.EmploymentStatus = strPtr("Freelance")
	assert.Contains(t, v.Validate(input), "Employment status must be Employed, Self-Employed, Unemployed, Retired, or Student")
}

func TestValidate_SavingsExceedIncome(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.AnnualIncome = floatPtr(30000)
	input.MonthlySavings = floatPtr(3000)

	assert.Contains(t, v.Validate(input), "Monthly savings cannot exceed annual income")
}

func TestCreate_SetsMetadataAndDefaults(t *testing.T) {
	svc := NewService()
	input := validInput()
	input.DebtAmount = nil
	input.FinancialGoals = nil

	created, err := svc.Create(input)
	require.NoError(t, err)

	assert.Equal(t, "Alex Thompson", created.Name)
	assert.Equal(t, 0.0, created.DebtAmount)
	assert.NotNil(t, created.FinancialGoals)
	assert.Empty(t, created.FinancialGoals)
	assert.Len(t, created.ProfileID, 12)
	assert.NotEmpty(t, created.CreatedDate)
	assert.Equal(t, created.CreatedDate, created.LastUpdated)
}

func TestCreate_InvalidInputReturnsAllErrors(t *testing.T) {
	svc := NewService()
	input := validInput()
	input.Age = intPtr(15)
	input.RiskTolerance = strPtr("Reckless")

	_, err := svc.Create(input)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
}

func TestUpdate_MergesAndRevalidates(t *testing.T) {
	svc := NewService()
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	updated, err := svc.Update(created, &Input{
		MonthlySavings: floatPtr(1500),
		FinancialGoals: []string{"Home Purchase"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, updated.MonthlySavings)
	assert.Equal(t, []string{"Home Purchase"}, updated.FinancialGoals)
	assert.Equal(t, created.ProfileID, updated.ProfileID)

	// Untouched fields survive the merge.
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.AnnualIncome, updated.AnnualIncome)

	// The original is never mutated.
	assert.Equal(t, 1200.0, created.MonthlySavings)
}

func TestUpdate_RejectsInvalidMerge(t *testing.T) {
	svc := NewService()
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	_, err = svc.Update(created, &Input{MonthlySavings: floatPtr(10000)})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "Monthly savings cannot exceed annual income")
}

func TestSegment_PriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		profile *domain.UserProfile
		want    string
	}{
		{
			name:    "young high earner wins over aggressive investor",
			profile: &domain.UserProfile{Age: 30, AnnualIncome: 95000, RiskTolerance: domain.RiskAggressive, InvestmentExperience: domain.ExperienceAdvanced},
			want:    SegmentYoungProfessional,
		},
		{
			name:    "income exactly 80000 falls through to aggressive investor",
			profile: &domain.UserProfile{Age: 28, AnnualIncome: 80000, RiskTolerance: domain.RiskAggressive, InvestmentExperience: domain.ExperienceIntermediate},
			want:    SegmentAggressiveInvestor,
		},
		{
			name:    "income 80001 crosses into young professional",
			profile: &domain.UserProfile{Age: 28, AnnualIncome: 80001, RiskTolerance: domain.RiskAggressive, InvestmentExperience: domain.ExperienceIntermediate},
			want:    SegmentYoungProfessional,
		},
		{
			name:    "beginner is a conservative saver regardless of tolerance",
			profile: &domain.UserProfile{Age: 40, AnnualIncome: 60000, RiskTolerance: domain.RiskAggressive, InvestmentExperience: domain.ExperienceBeginner},
			want:    SegmentConservativeSaver,
		},
		{
			name:    "aggressive with experience",
			profile: &domain.UserProfile{Age: 40, AnnualIncome: 60000, RiskTolerance: domain.RiskAggressive, InvestmentExperience: domain.ExperienceIntermediate},
			want:    SegmentAggressiveInvestor,
		},
		{
			name:    "age 50 and up",
			profile: &domain.UserProfile{Age: 55, AnnualIncome: 60000, RiskTolerance: domain.RiskModerate, InvestmentExperience: domain.ExperienceIntermediate},
			want:    SegmentPreRetirement,
		},
		{
			name:    "home purchase goal",
			profile: &domain.UserProfile{Age: 40, AnnualIncome: 60000, RiskTolerance: domain.RiskModerate, InvestmentExperience: domain.ExperienceIntermediate, FinancialGoals: []string{"Home Purchase"}},
			want:    SegmentFamilyFocused,
		},
		{
			name:    "default",
			profile: &domain.UserProfile{Age: 40, AnnualIncome: 60000, RiskTolerance: domain.RiskModerate, InvestmentExperience: domain.ExperienceIntermediate},
			want:    SegmentBalancedInvestor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.profile))
		})
	}
}

func TestCompare_SimilarProfiles(t *testing.T) {
	a := &domain.UserProfile{Age: 30, AnnualIncome: 70000, RiskTolerance: domain.RiskModerate}
	b := &domain.UserProfile{Age: 32, AnnualIncome: 65000, RiskTolerance: domain.RiskModerate}

	comparison := Compare(a, b)
	assert.Len(t, comparison.Similarities, 3)
	assert.Empty(t, comparison.Differences)
	assert.Contains(t, comparison.Recommendations[0], "collaborative recommendations")
}

func TestCompare_DifferentProfiles(t *testing.T) {
	a := &domain.UserProfile{Age: 25, AnnualIncome: 40000, RiskTolerance: domain.RiskAggressive}
	b := &domain.UserProfile{Age: 58, AnnualIncome: 150000, RiskTolerance: domain.RiskConservative}

	comparison := Compare(a, b)
	assert.Contains(t, comparison.Differences, "Different age groups (33 years apart)")
	assert.Contains(t, comparison.Differences, "Different risk tolerance levels")
	assert.Contains(t, comparison.Recommendations[0], "personalized recommendations")
}

func TestAnalyze_Population(t *testing.T) {
	profiles := []*domain.UserProfile{
		{Age: 25, AnnualIncome: 50000, MonthlySavings: 500, RiskTolerance: domain.RiskAggressive, FinancialGoals: []string{"Emergency Fund", "Home Purchase"}},
		{Age: 35, AnnualIncome: 80000, MonthlySavings: 1000, RiskTolerance: domain.RiskModerate, FinancialGoals: []string{"Emergency Fund"}},
		{Age: 45, AnnualIncome: 110000, MonthlySavings: 2000, RiskTolerance: domain.RiskModerate, FinancialGoals: []string{"Retirement Planning"}},
	}

	analytics := Analyze(profiles)
	require.NotNil(t, analytics)

	assert.Equal(t, 3, analytics.TotalUsers)
	assert.Equal(t, 35.0, analytics.Demographics.AvgAge)
	assert.Equal(t, "25-45", analytics.Demographics.AgeRange)
	assert.Equal(t, 35, analytics.Demographics.MedianAge)
	assert.Equal(t, 80000.0, analytics.FinancialMetrics.AvgIncome)
	assert.Equal(t, "$50,000 - $110,000", analytics.FinancialMetrics.IncomeRange)
	assert.Equal(t, "2 (66.7%)", analytics.RiskDistribution["Moderate"])

	require.NotEmpty(t, analytics.GoalAnalysis)
	assert.Equal(t, GoalCount{Goal: "Emergency Fund", Count: 2}, analytics.GoalAnalysis[0])
}

func TestAnalyze_Empty(t *testing.T) {
	assert.Nil(t, Analyze(nil))
}
