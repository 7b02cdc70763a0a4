package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		input  string
		want   Side
		wantOK bool
	}{
		{input: "BUY", want: SideBuy, wantOK: true},
		{input: "buy", want: SideBuy, wantOK: true},
		{input: " Sell ", want: SideSell, wantOK: true},
		{input: "hold", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			side, ok := ParseSide(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, side)
			}
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", NormalizeSymbol(" btcusdt "))
	assert.Equal(t, "ETHUSDT", NormalizeSymbol("ETHUSDT"))
}

func TestOrderCost(t *testing.T) {
	order := Order{
		Quantity:       decimal.RequireFromString("2.5"),
		ReferencePrice: decimal.RequireFromString("100.4"),
	}
	assert.True(t, order.Cost().Equal(decimal.RequireFromString("251")))
}
