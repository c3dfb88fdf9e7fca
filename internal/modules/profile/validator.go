// Package profile manages user financial profiles: validation, lifecycle,
// health scoring, segmentation, comparison and cross-profile analytics.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
)

// Input carries raw profile data before validation. Required scalar fields
// are pointers so a missing field can be told apart from a zero value.
type Input struct {
	Name                 *string  `json:"name"`
	Age                  *int     `json:"age"`
	AnnualIncome         *float64 `json:"annual_income"`
	EmploymentStatus     *string  `json:"employment_status"`
	RiskTolerance        *string  `json:"risk_tolerance"`
	InvestmentExperience *string  `json:"investment_experience"`
	MonthlySavings       *float64 `json:"monthly_savings"`
	DebtAmount           *float64 `json:"debt_amount"`
	FinancialGoals       []string `json:"financial_goals"`
}

// requiredFields lists the fields a profile cannot be created without, in
// reporting order. debt_amount and financial_goals are optional and default
// to zero / empty.
var requiredFields = []string{
	"name", "age", "annual_income", "employment_status",
	"risk_tolerance", "investment_experience", "monthly_savings",
}

// ValidationError aggregates all validation failures for a single input so
// callers can surface every problem at once instead of fixing them one at a
// time.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "profile validation failed: " + strings.Join(e.Errors, ", ")
}

// Validator checks profile inputs against field, range and consistency rules.
type Validator struct{}

// NewValidator creates a new profile validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns every rule violation found in the input. An empty slice
// means the input is a valid profile.
func (v *Validator) Validate(input *Input) []string {
	var errors []string

	for _, field := range requiredFields {
		present, value := input.field(field)
		if !present {
			errors = append(errors, fmt.Sprintf("Missing required field: %s", field))
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			errors = append(errors, fmt.Sprintf("Field '%s' cannot be empty", field))
		}
	}

	if input.Age != nil && (*input.Age < 18 || *input.Age > 100) {
		errors = append(errors, "Age must be between 18 and 100")
	}
	if input.AnnualIncome != nil && *input.AnnualIncome < 0 {
		errors = append(errors, "Annual income cannot be negative")
	}
	if input.MonthlySavings != nil && *input.MonthlySavings < 0 {
		errors = append(errors, "Monthly savings cannot be negative")
	}
	if input.DebtAmount != nil && *input.DebtAmount < 0 {
		errors = append(errors, "Debt amount cannot be negative")
	}

	if input.RiskTolerance != nil && !domain.RiskTolerance(*input.RiskTolerance).Valid() {
		errors = append(errors, "Risk tolerance must be Conservative, Moderate, or Aggressive")
	}
	if input.InvestmentExperience != nil && !domain.InvestmentExperience(*input.InvestmentExperience).Valid() {
		errors = append(errors, "Investment experience must be Beginner, Intermediate, or Advanced")
	}
	if input.EmploymentStatus != nil && !domain.EmploymentStatus(*input.EmploymentStatus).Valid() {
		errors = append(errors, "Employment status must be Employed, Self-Employed, Unemployed, Retired, or Student")
	}

	// Cross-field consistency: savings cannot outpace income.
	if input.AnnualIncome != nil && input.MonthlySavings != nil &&
		*input.AnnualIncome > 0 && *input.MonthlySavings > 0 &&
		*input.MonthlySavings*12 > *input.AnnualIncome {
		errors = append(errors, "Monthly savings cannot exceed annual income")
	}

	return errors
}

// field returns whether the named required field is set and, for string
// fields, its value for the emptiness check.
func (in *Input) field(name string) (bool, interface{}) {
	switch name {
	case "name":
		if in.Name == nil {
			return false, nil
		}
		return true, *in.Name
	case "age":
		return in.Age != nil, nil
	case "annual_income":
		return in.AnnualIncome != nil, nil
	case "employment_status":
		if in.EmploymentStatus == nil {
			return false, nil
		}
		return true, *in.EmploymentStatus
	case "risk_tolerance":
		if in.RiskTolerance == nil {
			return false, nil
		}
		return true, *in.RiskTolerance
	case "investment_experience":
		if in.InvestmentExperience == nil {
			return false, nil
		}
		return true, *in.InvestmentExperience
	case "monthly_savings":
		return in.MonthlySavings != nil, nil
	}
	return false, nil
}

// Service creates and updates profiles on top of the validator.
type Service struct {
	validator *Validator
	now       func() time.Time
}

// NewService creates a new profile service.
func NewService() *Service {
	return &Service{
		validator: NewValidator(),
		now:       time.Now,
	}
}

// Validator exposes the underlying validator for standalone validation calls.
func (s *Service) Validator() *Validator {
	return s.validator
}

// Create validates the input and returns a new profile with metadata filled
// in. Optional fields default to zero debt and no goals.
func (s *Service) Create(input *Input) (*domain.UserProfile, error) {
	if errs := s.validator.Validate(input); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	now := s.now()
	profile := &domain.UserProfile{
		Name:                 *input.Name,
		Age:                  *input.Age,
		AnnualIncome:         *input.AnnualIncome,
		EmploymentStatus:     domain.EmploymentStatus(*input.EmploymentStatus),
		RiskTolerance:        domain.RiskTolerance(*input.RiskTolerance),
		InvestmentExperience: domain.InvestmentExperience(*input.InvestmentExperience),
		MonthlySavings:       *input.MonthlySavings,
		FinancialGoals:       []string{},
		CreatedDate:          now.Format(time.RFC3339),
		LastUpdated:          now.Format(time.RFC3339),
	}
	if input.DebtAmount != nil {
		profile.DebtAmount = *input.DebtAmount
	}
	if input.FinancialGoals != nil {
		profile.FinancialGoals = input.FinancialGoals
	}
	profile.ProfileID = s.generateProfileID(profile.Name, profile.Age, now)

	return profile, nil
}

// Update merges the updates into a copy of the existing profile, re-validates
// the merged result and stamps last_updated. The existing profile is never
// mutated.
func (s *Service) Update(existing *domain.UserProfile, updates *Input) (*domain.UserProfile, error) {
	merged := *existing
	if existing.FinancialGoals != nil {
		merged.FinancialGoals = append([]string(nil), existing.FinancialGoals...)
	}

	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Age != nil {
		merged.Age = *updates.Age
	}
	if updates.AnnualIncome != nil {
		merged.AnnualIncome = *updates.AnnualIncome
	}
	if updates.EmploymentStatus != nil {
		merged.EmploymentStatus = domain.EmploymentStatus(*updates.EmploymentStatus)
	}
	if updates.RiskTolerance != nil {
		merged.RiskTolerance = domain.RiskTolerance(*updates.RiskTolerance)
	}
	if updates.InvestmentExperience != nil {
		merged.InvestmentExperience = domain.InvestmentExperience(*updates.InvestmentExperience)
	}
	if updates.MonthlySavings != nil {
		merged.MonthlySavings = *updates.MonthlySavings
	}
	if updates.DebtAmount != nil {
		merged.DebtAmount = *updates.DebtAmount
	}
	if updates.FinancialGoals != nil {
		merged.FinancialGoals = updates.FinancialGoals
	}

	if errs := s.validator.Validate(inputFromProfile(&merged)); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	merged.LastUpdated = s.now().Format(time.RFC3339)
	return &merged, nil
}

// generateProfileID derives a short stable identifier from the user's name,
// age and the creation instant.
func (s *Service) generateProfileID(name string, age int, createdAt time.Time) string {
	seed := fmt.Sprintf("%s%d%d", name, age, createdAt.UnixNano())
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:12]
}

// inputFromProfile converts a full profile back into an Input so merged
// updates run through the same validation path as fresh profiles.
func inputFromProfile(p *domain.UserProfile) *Input {
	name := p.Name
	age := p.Age
	income := p.AnnualIncome
	employment := string(p.EmploymentStatus)
	risk := string(p.RiskTolerance)
	experience := string(p.InvestmentExperience)
	savings := p.MonthlySavings
	debt := p.DebtAmount

	return &Input{
		Name:                 &name,
		Age:                  &age,
		AnnualIncome:         &income,
		EmploymentStatus:     &employment,
		RiskTolerance:        &risk,
		InvestmentExperience: &experience,
		MonthlySavings:       &savings,
		DebtAmount:           &debt,
		FinancialGoals:       p.FinancialGoals,
	}
}
