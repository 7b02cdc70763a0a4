package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide normalizes user input into a Side.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	}
	return "", false
}

// OrderType distinguishes market from limit orders.
type OrderType string

const (
	TypeMarket OrderType = "MARKET"
	TypeLimit  OrderType = "LIMIT"
)

// Status is the terminal state of a simulated order. Every order resolves
// synchronously at submission; there is no open/pending state.
type Status string

const (
	StatusFilled   Status = "FILLED"
	StatusRejected Status = "REJECTED"
)

// RejectReason explains why an order was rejected.
type RejectReason string

const (
	ReasonNone                 RejectReason = ""
	ReasonInvalidQuantity      RejectReason = "INVALID_QUANTITY"
	ReasonInvalidPrice         RejectReason = "INVALID_PRICE"
	ReasonInsufficientFunds    RejectReason = "INSUFFICIENT_FUNDS"
	ReasonInsufficientPosition RejectReason = "INSUFFICIENT_POSITION"
	ReasonNotMarketable        RejectReason = "NOT_MARKETABLE"
)

// Order is an immutable record of one resolved submission.
type Order struct {
	ID       int64           `json:"id"`
	Symbol   string          `json:"symbol"`
	Side     Side            `json:"side"`
	Type     OrderType       `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`

	// LimitPrice is zero for market orders.
	LimitPrice decimal.Decimal `json:"limit_price"`

	// ReferencePrice is the oracle price observed at evaluation time.
	// ExecutionPrice equals ReferencePrice for fills and is zero otherwise;
	// the simulator does not model price improvement.
	ReferencePrice decimal.Decimal `json:"reference_price"`
	ExecutionPrice decimal.Decimal `json:"execution_price"`

	// PriceSource records where ReferencePrice came from, so a simulated
	// fallback price is always distinguishable from a live quote.
	PriceSource string `json:"price_source"`

	Status    Status       `json:"status"`
	Reason    RejectReason `json:"reason,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Cost is the quote-currency value of the order at its reference price.
func (o Order) Cost() decimal.Decimal {
	return o.Quantity.Mul(o.ReferencePrice)
}

// AccountSnapshot is an immutable copy of account state for reporting.
type AccountSnapshot struct {
	CashBalance decimal.Decimal            `json:"cash_balance"`
	Positions   map[string]decimal.Decimal `json:"positions"`

	// TotalPortfolioValue is cash plus positions valued at current oracle
	// prices (fallback prices when a live quote is unavailable).
	TotalPortfolioValue decimal.Decimal `json:"total_portfolio_value"`
}

// NormalizeSymbol upper-cases and trims a trading-pair identifier.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
