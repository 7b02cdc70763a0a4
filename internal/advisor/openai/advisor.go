package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/paperexch/papertrade/internal/models"
)

// SessionAdvisor implements the Advisor interface over any OpenAI-compatible
// chat-completion API. A custom base URL points it at providers such as
// DeepSeek.
type SessionAdvisor struct {
	client *openai.Client
	model  string
}

// NewSessionAdvisor creates a new SessionAdvisor instance
func NewSessionAdvisor(apiKey, model, baseURL string) *SessionAdvisor {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4
	}
	return &SessionAdvisor{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// ReviewSession implements the Advisor interface
func (a *SessionAdvisor) ReviewSession(ctx context.Context, snapshot models.AccountSnapshot, orders []models.Order) (string, error) {
	if len(orders) == 0 {
		return "No orders were placed this session, so there is nothing to review yet.", nil
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a trading coach reviewing a paper-trading session. " +
					"Be concrete and concise; comment on order sizing, rejected orders, " +
					"and anything the trader should practice next.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(snapshot, orders),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to review session: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(snapshot models.AccountSnapshot, orders []models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cash balance: %s\n", snapshot.CashBalance)
	fmt.Fprintf(&b, "Total portfolio value: %s\n", snapshot.TotalPortfolioValue)
	if len(snapshot.Positions) > 0 {
		b.WriteString("Open positions:\n")
		for symbol, qty := range snapshot.Positions {
			fmt.Fprintf(&b, "  %s: %s\n", symbol, qty)
		}
	}

	b.WriteString("Orders, oldest first:\n")
	for _, order := range orders {
		fmt.Fprintf(&b, "  #%d %s %s %s %s @ %s -> %s",
			order.ID, order.Side, order.Quantity, order.Symbol,
			order.Type, order.ReferencePrice, order.Status)
		if order.Reason != models.ReasonNone {
			fmt.Fprintf(&b, " (%s)", order.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}
