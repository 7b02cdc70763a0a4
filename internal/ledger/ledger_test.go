package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		wantErr bool
	}{
		{name: "positive balance", balance: "10000"},
		{name: "zero balance", balance: "0"},
		{name: "negative balance", balance: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(d(tt.balance))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.CashBalance().Equal(d(tt.balance)))
		})
	}
}

func TestLedger_CreditDebit(t *testing.T) {
	l, err := New(d("100"))
	require.NoError(t, err)

	require.NoError(t, l.Credit(d("50")))
	assert.True(t, l.CashBalance().Equal(d("150")))

	require.NoError(t, l.Debit(d("150")))
	assert.True(t, l.CashBalance().IsZero())

	// Debit refuses to go negative and leaves the balance untouched.
	err = l.Debit(d("0.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, l.CashBalance().IsZero())
}

func TestLedger_InvalidAmounts(t *testing.T) {
	l, err := New(d("100"))
	require.NoError(t, err)

	assert.ErrorIs(t, l.Credit(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, l.Debit(d("-5")), ErrInvalidAmount)
	assert.ErrorIs(t, l.IncreasePosition("BTCUSDT", decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, l.DecreasePosition("BTCUSDT", d("-1")), ErrInvalidAmount)

	assert.True(t, l.CashBalance().Equal(d("100")))
}

func TestLedger_Positions(t *testing.T) {
	l, err := New(d("100"))
	require.NoError(t, err)

	require.NoError(t, l.IncreasePosition("btcusdt", d("0.5")))
	require.NoError(t, l.IncreasePosition("BTCUSDT", d("0.5")))

	// Symbols are case-normalized, so both increases hit the same position.
	assert.True(t, l.Position("BtcUsdt").Equal(d("1")))

	err = l.DecreasePosition("BTCUSDT", d("2"))
	assert.ErrorIs(t, err, ErrInsufficientPosition)
	assert.True(t, l.Position("BTCUSDT").Equal(d("1")))

	require.NoError(t, l.DecreasePosition("BTCUSDT", d("1")))

	// A position reduced to zero is removed entirely.
	assert.True(t, l.Position("BTCUSDT").IsZero())
	_, positions := l.Snapshot()
	assert.Empty(t, positions)
}

func TestLedger_SellWithoutPosition(t *testing.T) {
	l, err := New(d("100"))
	require.NoError(t, err)

	err = l.DecreasePosition("ETHUSDT", d("1"))
	assert.ErrorIs(t, err, ErrInsufficientPosition)
}

func TestLedger_SnapshotIsolation(t *testing.T) {
	l, err := New(d("100"))
	require.NoError(t, err)
	require.NoError(t, l.IncreasePosition("BTCUSDT", d("2")))

	_, positions := l.Snapshot()
	positions["BTCUSDT"] = d("999")
	positions["ETHUSDT"] = d("1")

	assert.True(t, l.Position("BTCUSDT").Equal(d("2")))
	assert.True(t, l.Position("ETHUSDT").IsZero())
}
