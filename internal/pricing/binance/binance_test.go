package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperexch/papertrade/internal/pricing"
)

func TestSource_CurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/ticker/price", r.URL.Path)

		switch r.URL.Query().Get("symbol") {
		case "BTCUSDT":
			w.Write([]byte(`{"symbol":"BTCUSDT","price":"43210.55000000"}`))
		case "BADJSON":
			w.Write([]byte(`{"symbol":`))
		case "BADPRICE":
			w.Write([]byte(`{"symbol":"BADPRICE","price":"not-a-number"}`))
		case "NOPRICE":
			w.Write([]byte(`{"symbol":"NOPRICE"}`))
		case "ZERO":
			w.Write([]byte(`{"symbol":"ZERO","price":"0"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
		}
	}))
	defer server.Close()

	source := NewSource(server.URL)
	ctx := context.Background()

	t.Run("valid price", func(t *testing.T) {
		price, err := source.CurrentPrice(ctx, "btcusdt")
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.RequireFromString("43210.55")))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := source.CurrentPrice(ctx, "UNKNOWN")
		assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := source.CurrentPrice(ctx, "BADJSON")
		assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
	})

	t.Run("malformed price string", func(t *testing.T) {
		_, err := source.CurrentPrice(ctx, "BADPRICE")
		assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
	})

	t.Run("missing price field", func(t *testing.T) {
		_, err := source.CurrentPrice(ctx, "NOPRICE")
		assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := source.CurrentPrice(ctx, "ZERO")
		assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
	})
}

func TestSource_Unreachable(t *testing.T) {
	source := NewSource("http://127.0.0.1:0")

	_, err := source.CurrentPrice(context.Background(), "BTCUSDT")
	assert.ErrorIs(t, err, pricing.ErrPriceUnavailable)
}
