package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable indicates the upstream price source could not produce
// a usable quote: unreachable, unknown symbol, or malformed response.
var ErrPriceUnavailable = errors.New("price unavailable")

// Source identifies where a quote came from. Everything except SourceLive is
// a simulation convenience, not a real market price.
type Source string

const (
	SourceLive    Source = "live"
	SourceTable   Source = "fallback-table"
	SourceDefault Source = "fallback-default"
)

// Quote is a priced symbol tagged with the origin of the price.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	Source Source
}

// Oracle provides the current market price for a symbol.
type Oracle interface {
	// CurrentPrice returns the current price for symbol, or an error
	// wrapping ErrPriceUnavailable when no quote can be produced.
	CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
