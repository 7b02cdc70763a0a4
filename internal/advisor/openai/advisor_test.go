package openai

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperexch/papertrade/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	snapshot := models.AccountSnapshot{
		CashBalance:         decimal.NewFromInt(9400),
		TotalPortfolioValue: decimal.NewFromInt(10000),
		Positions: map[string]decimal.Decimal{
			"BTCUSDT": decimal.RequireFromString("3"),
		},
	}
	orders := []models.Order{
		{
			ID:             1,
			Symbol:         "BTCUSDT",
			Side:           models.SideBuy,
			Type:           models.TypeMarket,
			Quantity:       decimal.NewFromInt(3),
			ReferencePrice: decimal.NewFromInt(200),
			Status:         models.StatusFilled,
		},
		{
			ID:             2,
			Symbol:         "BTCUSDT",
			Side:           models.SideBuy,
			Type:           models.TypeMarket,
			Quantity:       decimal.NewFromInt(100),
			ReferencePrice: decimal.NewFromInt(200),
			Status:         models.StatusRejected,
			Reason:         models.ReasonInsufficientFunds,
		},
	}

	prompt := buildPrompt(snapshot, orders)

	assert.Contains(t, prompt, "Cash balance: 9400")
	assert.Contains(t, prompt, "BTCUSDT: 3")
	assert.Contains(t, prompt, "#1 BUY 3 BTCUSDT MARKET @ 200 -> FILLED")
	assert.Contains(t, prompt, "#2 BUY 100 BTCUSDT MARKET @ 200 -> REJECTED (INSUFFICIENT_FUNDS)")
}

func TestReviewSession_NoOrders(t *testing.T) {
	advisor := NewSessionAdvisor("test-key", "", "")

	review, err := advisor.ReviewSession(context.Background(), models.AccountSnapshot{}, nil)
	require.NoError(t, err)
	assert.Contains(t, review, "nothing to review")
}
