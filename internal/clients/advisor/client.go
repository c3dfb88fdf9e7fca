// Package advisor generates personalized financial advice through the
// Anthropic Messages API. Advice is best-effort: any failure produces an
// apologetic message rather than an error, so a model outage never breaks
// the dashboard.
package advisor

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

const (
	maxTokens   = 800
	temperature = 0.7
)

const systemPrompt = `You are a professional financial advisor AI. Provide personalized, actionable financial advice based on the user's profile and query.

Guidelines:
- Be specific and actionable in your recommendations
- Consider the user's risk tolerance, age, and financial situation
- Provide educational explanations for your recommendations
- Always include appropriate disclaimers
- Focus on practical steps the user can take
- Be encouraging but realistic
- If the query is about investments, consider diversification and risk management

Always start responses with a brief acknowledgment of their question and end with a disclaimer about seeking professional advice for major financial decisions.`

// messageCreator is the slice of the SDK the client depends on.
type messageCreator interface {
	New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Client generates advice through the Anthropic Messages API.
type Client struct {
	messages messageCreator
	model    string
	log      zerolog.Logger
}

// NewClient creates a new advice client.
func NewClient(apiKey, model string, log zerolog.Logger) *Client {
	sdkClient := sdk.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		messages: &sdkClient.Messages,
		model:    model,
		log:      log.With().Str("client", "advisor").Logger(),
	}
}

// GetAdvice answers a financial question in the context of the user's
// profile. On failure it returns an apology embedding the error detail.
func (c *Client) GetAdvice(ctx context.Context, query string, profile *domain.UserProfile) string {
	prompt := fmt.Sprintf("%s\n\nUser Question: %s", profileContext(profile), query)

	message, err := c.messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: sdk.Float(temperature),
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.Error().Err(err).Msg("Advice request failed")
		return apology(err)
	}
	if len(message.Content) == 0 {
		c.log.Error().Msg("Advice response contained no content")
		return apology(fmt.Errorf("empty response from model"))
	}

	var out strings.Builder
	for _, block := range message.Content {
		out.WriteString(block.Text)
	}
	return out.String()
}

func apology(err error) string {
	return fmt.Sprintf("I apologize, but I'm having trouble processing your request right now. Error: %s. Please try again or rephrase your question.", err)
}

// profileContext renders the profile block prepended to every query.
func profileContext(p *domain.UserProfile) string {
	if p == nil {
		p = &domain.UserProfile{Name: "User"}
	}
	name := p.Name
	if name == "" {
		name = "User"
	}

	return fmt.Sprintf(`User Profile:
- Name: %s
- Age: %d
- Annual Income: $%s
- Employment: %s
- Risk Tolerance: %s
- Investment Experience: %s
- Monthly Savings: $%s
- Total Debt: $%s
- Financial Goals: %s`,
		name,
		p.Age,
		formatMoney(p.AnnualIncome),
		p.EmploymentStatus,
		p.RiskTolerance,
		p.InvestmentExperience,
		formatMoney(p.MonthlySavings),
		formatMoney(p.DebtAmount),
		strings.Join(p.FinancialGoals, ", "),
	)
}

// formatMoney renders a whole-dollar amount with thousands separators.
func formatMoney(amount float64) string {
	whole := fmt.Sprintf("%.0f", amount)

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	result := strings.Join(groups, ",")
	if negative {
		return "-" + result
	}
	return result
}
