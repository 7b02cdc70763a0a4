package binance

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paperexch/papertrade/internal/trading"
)

// Integration tests against the spot testnet. They need testnet credentials
// in BINANCE_API_KEY / BINANCE_SECRET_KEY and are skipped in short mode.
func TestSpotExecutor_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	const symbol = "BTCUSDT"

	apiKey := os.Getenv("BINANCE_API_KEY")
	secretKey := os.Getenv("BINANCE_SECRET_KEY")
	if apiKey == "" || secretKey == "" {
		t.Skip("BINANCE_API_KEY and BINANCE_SECRET_KEY are required")
	}

	executor := NewSpotExecutor(apiKey, secretKey, true)
	ctx := context.Background()

	t.Run("Test Get Balance", func(t *testing.T) {
		balance, err := executor.GetBalance(ctx, "BTC")
		require.NoError(t, err)
		require.False(t, balance.IsNegative())
	})

	t.Run("Test Get Price", func(t *testing.T) {
		price, err := executor.GetPrice(ctx, symbol)
		require.NoError(t, err)
		require.True(t, price.IsPositive())
	})

	t.Run("Test Place and Cancel Limit Order", func(t *testing.T) {
		currentPrice, err := executor.GetPrice(ctx, symbol)
		require.NoError(t, err)

		// 5% below market so the order rests instead of filling.
		limitPrice := currentPrice.Mul(decimal.RequireFromString("0.95")).RoundDown(0)

		order := &trading.Order{
			Symbol:    symbol,
			Side:      "buy",
			Quantity:  decimal.RequireFromString("0.001"),
			Price:     limitPrice,
			OrderType: trading.OrderTypeLimit,
		}

		err = executor.PlaceOrder(ctx, order)
		require.NoError(t, err)
		require.NotEmpty(t, order.OrderID)
		require.NotEmpty(t, order.RawOrderID)

		time.Sleep(2 * time.Second)

		status, err := executor.GetOrderStatus(ctx, symbol, order.OrderID)
		require.NoError(t, err)
		require.Equal(t, "NEW", status.Status)

		err = executor.CancelOrder(ctx, symbol, order.OrderID)
		require.NoError(t, err)

		time.Sleep(2 * time.Second)

		status, err = executor.GetOrderStatus(ctx, symbol, order.OrderID)
		require.NoError(t, err)
		require.Equal(t, "CANCELED", status.Status)
	})

	t.Run("Test Place Market Order", func(t *testing.T) {
		order := &trading.Order{
			Symbol:    symbol,
			Side:      "buy",
			Quantity:  decimal.RequireFromString("0.001"),
			OrderType: trading.OrderTypeMarket,
		}

		err := executor.PlaceOrder(ctx, order)
		require.NoError(t, err)
		require.NotEmpty(t, order.Status)
		require.NotEmpty(t, order.OrderID)
	})

	t.Run("Test Place and Cancel Stop-Limit Order", func(t *testing.T) {
		currentPrice, err := executor.GetPrice(ctx, symbol)
		require.NoError(t, err)

		// Trigger 5% above market so the order rests untriggered.
		stopPrice := currentPrice.Mul(decimal.RequireFromString("1.05")).RoundDown(0)
		limitPrice := currentPrice.Mul(decimal.RequireFromString("1.06")).RoundDown(0)

		order := &trading.Order{
			Symbol:    symbol,
			Side:      "buy",
			Quantity:  decimal.RequireFromString("0.001"),
			Price:     limitPrice,
			StopPrice: stopPrice,
			OrderType: trading.OrderTypeStopLimit,
		}

		err = executor.PlaceOrder(ctx, order)
		require.NoError(t, err)
		require.NotEmpty(t, order.OrderID)

		time.Sleep(2 * time.Second)

		err = executor.CancelOrder(ctx, symbol, order.OrderID)
		require.NoError(t, err)
	})

	t.Run("Test Place OCO Order and List Open Orders", func(t *testing.T) {
		currentPrice, err := executor.GetPrice(ctx, symbol)
		require.NoError(t, err)

		// Buy-side OCO needs the limit leg below market and the stop leg
		// above it.
		order := &trading.OCOOrder{
			Symbol:         symbol,
			Side:           "buy",
			Quantity:       decimal.RequireFromString("0.001"),
			Price:          currentPrice.Mul(decimal.RequireFromString("0.95")).RoundDown(0),
			StopPrice:      currentPrice.Mul(decimal.RequireFromString("1.05")).RoundDown(0),
			StopLimitPrice: currentPrice.Mul(decimal.RequireFromString("1.06")).RoundDown(0),
		}

		err = executor.PlaceOCOOrder(ctx, order)
		require.NoError(t, err)
		require.NotZero(t, order.OrderListID)
		require.Len(t, order.OrderIDs, 2)

		time.Sleep(2 * time.Second)

		open, err := executor.GetOpenOrders(ctx, symbol)
		require.NoError(t, err)
		openIDs := make(map[string]bool, len(open))
		for _, o := range open {
			openIDs[o.OrderID] = true
		}
		// Both legs rest until one triggers.
		for _, id := range order.OrderIDs {
			require.True(t, openIDs[id], "leg %s should be open", id)
		}

		for _, id := range order.OrderIDs {
			_ = executor.CancelOrder(ctx, symbol, id)
		}
	})
}

// Validation failures must surface before any request goes out, so these run
// without credentials or network.
func TestSpotExecutor_Validation(t *testing.T) {
	executor := NewSpotExecutor("", "", true)
	ctx := context.Background()

	t.Run("Unsupported Order Type", func(t *testing.T) {
		err := executor.PlaceOrder(ctx, &trading.Order{
			Symbol:    "BTCUSDT",
			Side:      "buy",
			Quantity:  decimal.RequireFromString("1"),
			OrderType: "trailing_stop",
		})
		require.ErrorContains(t, err, "unsupported order type")
	})

	t.Run("Invalid Side", func(t *testing.T) {
		err := executor.PlaceOrder(ctx, &trading.Order{
			Symbol:    "BTCUSDT",
			Side:      "hold",
			Quantity:  decimal.RequireFromString("1"),
			OrderType: trading.OrderTypeMarket,
		})
		require.ErrorContains(t, err, "invalid side")
	})

	t.Run("Invalid OCO Side", func(t *testing.T) {
		err := executor.PlaceOCOOrder(ctx, &trading.OCOOrder{
			Symbol:   "BTCUSDT",
			Side:     "hold",
			Quantity: decimal.RequireFromString("1"),
		})
		require.ErrorContains(t, err, "invalid side")
	})
}
