package pricing

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/models"
)

// DefaultTimeout bounds how long a live price lookup may block before the
// fallback chain takes over.
const DefaultTimeout = 5 * time.Second

// Fallback wraps a live oracle with a static per-symbol price table and a
// final default price, so price discovery never fails outright. The chain
// is live source, then table, then default; the returned Quote's Source
// records which step answered.
type Fallback struct {
	primary      Oracle
	table        map[string]decimal.Decimal
	defaultPrice decimal.Decimal
	timeout      time.Duration
	logger       *slog.Logger
}

// NewFallback builds the fallback chain. The table keys are normalized on
// construction; primary may be nil, in which case only the static steps are
// used.
func NewFallback(primary Oracle, table map[string]decimal.Decimal, defaultPrice decimal.Decimal, timeout time.Duration, logger *slog.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	normalized := make(map[string]decimal.Decimal, len(table))
	for symbol, price := range table {
		normalized[models.NormalizeSymbol(symbol)] = price
	}

	return &Fallback{
		primary:      primary,
		table:        normalized,
		defaultPrice: defaultPrice,
		timeout:      timeout,
		logger:       logger,
	}
}

// Quote resolves a price for symbol. It never fails: an unreachable source
// or unknown symbol degrades to the static table and finally to the default
// price, and every non-live answer is logged as simulated.
func (f *Fallback) Quote(ctx context.Context, symbol string) Quote {
	symbol = models.NormalizeSymbol(symbol)

	if f.primary != nil {
		ctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		price, err := f.primary.CurrentPrice(ctx, symbol)
		if err == nil {
			return Quote{Symbol: symbol, Price: price, Source: SourceLive}
		}
		f.logger.Warn("live price unavailable, falling back", "symbol", symbol, "err", err)
	}

	if price, ok := f.table[symbol]; ok {
		f.logger.Info("using static fallback price", "symbol", symbol, "price", price)
		return Quote{Symbol: symbol, Price: price, Source: SourceTable}
	}

	f.logger.Info("symbol not in fallback table, using default price",
		"symbol", symbol, "price", f.defaultPrice)
	return Quote{Symbol: symbol, Price: f.defaultPrice, Source: SourceDefault}
}
