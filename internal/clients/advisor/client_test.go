package advisor

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

type stubMessages struct {
	lastParams sdk.MessageNewParams
	response   *sdk.Message
	err        error
}

func (s *stubMessages) New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error) {
	s.lastParams = params
	return s.response, s.err
}

func textMessage(text string) *sdk.Message {
	return &sdk.Message{
		Content: []sdk.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Name:                 "Alex Thompson",
		Age:                  28,
		AnnualIncome:         75000,
		EmploymentStatus:     domain.EmploymentEmployed,
		RiskTolerance:        domain.RiskAggressive,
		InvestmentExperience: domain.ExperienceIntermediate,
		MonthlySavings:       1200,
		DebtAmount:           25000,
		FinancialGoals:       []string{"Retirement Planning", "Home Purchase"},
	}
}

func TestGetAdviceReturnsModelText(t *testing.T) {
	stub := &stubMessages{response: textMessage("Great question about retirement savings.")}
	client := &Client{messages: stub, model: "test-model", log: zerolog.Nop()}

	advice := client.GetAdvice(context.Background(), "How much should I save?", testProfile())

	assert.Equal(t, "Great question about retirement savings.", advice)
}

func TestGetAdviceSendsProfileContextAndQuery(t *testing.T) {
	stub := &stubMessages{response: textMessage("ok")}
	client := &Client{messages: stub, model: "test-model", log: zerolog.Nop()}

	client.GetAdvice(context.Background(), "Should I pay off debt first?", testProfile())

	params := stub.lastParams
	assert.Equal(t, sdk.Model("test-model"), params.Model)
	assert.Equal(t, int64(800), params.MaxTokens)
	require.Len(t, params.System, 1)
	assert.Contains(t, params.System[0].Text, "professional financial advisor")

	require.Len(t, params.Messages, 1)
	prompt := params.Messages[0].Content[0].OfText.Text
	assert.Contains(t, prompt, "- Name: Alex Thompson")
	assert.Contains(t, prompt, "- Annual Income: $75,000")
	assert.Contains(t, prompt, "- Total Debt: $25,000")
	assert.Contains(t, prompt, "- Financial Goals: Retirement Planning, Home Purchase")
	assert.Contains(t, prompt, "User Question: Should I pay off debt first?")
}

func TestGetAdviceReturnsApologyOnError(t *testing.T) {
	stub := &stubMessages{err: errors.New("rate limited")}
	client := &Client{messages: stub, model: "test-model", log: zerolog.Nop()}

	advice := client.GetAdvice(context.Background(), "anything", testProfile())

	assert.Equal(t, "I apologize, but I'm having trouble processing your request right now. Error: rate limited. Please try again or rephrase your question.", advice)
}

func TestGetAdviceHandlesEmptyResponse(t *testing.T) {
	stub := &stubMessages{response: &sdk.Message{}}
	client := &Client{messages: stub, model: "test-model", log: zerolog.Nop()}

	advice := client.GetAdvice(context.Background(), "anything", testProfile())

	assert.Contains(t, advice, "I apologize")
}

func TestGetAdviceToleratesNilProfile(t *testing.T) {
	stub := &stubMessages{response: textMessage("ok")}
	client := &Client{messages: stub, model: "test-model", log: zerolog.Nop()}

	client.GetAdvice(context.Background(), "hello", nil)

	prompt := stub.lastParams.Messages[0].Content[0].OfText.Text
	assert.Contains(t, prompt, "- Name: User")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", formatMoney(0))
	assert.Equal(t, "999", formatMoney(999))
	assert.Equal(t, "1,200", formatMoney(1200))
	assert.Equal(t, "75,000", formatMoney(75000))
	assert.Equal(t, "1,250,000", formatMoney(1250000))
}
