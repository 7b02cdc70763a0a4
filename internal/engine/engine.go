// Package engine implements the paper-trading core: the order processor
// that resolves every submission synchronously against a ledger, and the
// session facade that is the only surface callers see.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/ledger"
	"github.com/paperexch/papertrade/internal/models"
	"github.com/paperexch/papertrade/internal/orderlog"
	"github.com/paperexch/papertrade/internal/pricing"
)

// Session owns one simulated account. Each exported method is a single
// atomic unit of work: the fill decision, ledger mutation, and log append
// run under one mutex, so two orders can never both pass the affordability
// check and overdraw the balance.
//
// Placing an order never fails for business reasons. Validation and ledger
// shortfalls come back as a REJECTED order with a reason code; the error
// return is reserved for infrastructure failures such as the order log.
type Session struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	prices *pricing.Fallback
	log    orderlog.Log
	logger *slog.Logger
	nextID int64
}

// NewSession composes a ledger, price source, and order log into a session.
func NewSession(l *ledger.Ledger, prices *pricing.Fallback, log orderlog.Log, logger *slog.Logger) (*Session, error) {
	if l == nil || prices == nil || log == nil {
		return nil, fmt.Errorf("ledger, prices and order log are all required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ledger: l,
		prices: prices,
		log:    log,
		logger: logger,
		nextID: 1,
	}, nil
}

// PlaceMarketOrder submits a market order and returns the resolved record.
func (s *Session) PlaceMarketOrder(ctx context.Context, symbol string, side models.Side, qty decimal.Decimal) (models.Order, error) {
	return s.place(ctx, symbol, side, models.TypeMarket, qty, decimal.Zero)
}

// PlaceLimitOrder submits a limit order. A marketable limit order fills
// immediately at the current market price, never at the limit price; an
// unmarketable one is rejected rather than left resting.
func (s *Session) PlaceLimitOrder(ctx context.Context, symbol string, side models.Side, qty, limitPrice decimal.Decimal) (models.Order, error) {
	return s.place(ctx, symbol, side, models.TypeLimit, qty, limitPrice)
}

func (s *Session) place(ctx context.Context, symbol string, side models.Side, typ models.OrderType, qty, limitPrice decimal.Decimal) (models.Order, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return models.Order{}, fmt.Errorf("symbol must not be empty")
	}
	if side != models.SideBuy && side != models.SideSell {
		return models.Order{}, fmt.Errorf("invalid side: %q", side)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quote := s.prices.Quote(ctx, symbol)

	order := models.Order{
		ID:             s.nextID,
		Symbol:         symbol,
		Side:           side,
		Type:           typ,
		Quantity:       qty,
		LimitPrice:     limitPrice,
		ReferencePrice: quote.Price,
		PriceSource:    string(quote.Source),
		Timestamp:      time.Now(),
	}
	// Ids are consumed by rejected orders too.
	s.nextID++

	reason, err := s.resolve(&order, quote.Price)
	if err != nil {
		return models.Order{}, err
	}
	if reason != models.ReasonNone {
		order.Status = models.StatusRejected
		order.Reason = reason
		s.logger.Info("order rejected",
			"id", order.ID, "symbol", symbol, "side", side, "type", typ,
			"qty", qty, "reason", reason, "price", quote.Price, "source", quote.Source)
	} else {
		order.Status = models.StatusFilled
		order.ExecutionPrice = quote.Price
		s.logger.Info("order filled",
			"id", order.ID, "symbol", symbol, "side", side, "type", typ,
			"qty", qty, "price", quote.Price, "source", quote.Source)
	}

	if err := s.log.Append(ctx, order); err != nil {
		return order, fmt.Errorf("failed to append order %d: %w", order.ID, err)
	}

	return order, nil
}

// resolve applies the fill policy and mutates the ledger on success. A
// non-empty reason means the order is rejected and the ledger is untouched.
// The ledger mutators cannot fail once their preconditions were checked
// under the session lock, so an error here is a bug, not a rejection.
func (s *Session) resolve(order *models.Order, price decimal.Decimal) (models.RejectReason, error) {
	if !order.Quantity.IsPositive() {
		return models.ReasonInvalidQuantity, nil
	}
	if order.Type == models.TypeLimit && !order.LimitPrice.IsPositive() {
		return models.ReasonInvalidPrice, nil
	}

	if order.Type == models.TypeLimit {
		// Marketability gate: a BUY must be willing to pay at least the
		// market price, a SELL to accept at most the market price.
		marketable := order.LimitPrice.GreaterThanOrEqual(price)
		if order.Side == models.SideSell {
			marketable = order.LimitPrice.LessThanOrEqual(price)
		}
		if !marketable {
			return models.ReasonNotMarketable, nil
		}
	}

	cost := order.Quantity.Mul(price)

	switch order.Side {
	case models.SideBuy:
		if s.ledger.CashBalance().LessThan(cost) {
			return models.ReasonInsufficientFunds, nil
		}
		if err := s.ledger.Debit(cost); err != nil {
			return models.ReasonNone, fmt.Errorf("debit after affordability check: %w", err)
		}
		if err := s.ledger.IncreasePosition(order.Symbol, order.Quantity); err != nil {
			return models.ReasonNone, fmt.Errorf("increase position: %w", err)
		}
	case models.SideSell:
		if s.ledger.Position(order.Symbol).LessThan(order.Quantity) {
			return models.ReasonInsufficientPosition, nil
		}
		if err := s.ledger.DecreasePosition(order.Symbol, order.Quantity); err != nil {
			return models.ReasonNone, fmt.Errorf("decrease position: %w", err)
		}
		if err := s.ledger.Credit(cost); err != nil {
			return models.ReasonNone, fmt.Errorf("credit after sell: %w", err)
		}
	}

	return models.ReasonNone, nil
}

// Balance returns a snapshot of the account: cash, positions, and the total
// portfolio value with each position priced through the oracle (falling back
// per symbol when no live quote is available).
func (s *Session) Balance(ctx context.Context) (models.AccountSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cash, positions := s.ledger.Snapshot()

	total := cash
	for symbol, qty := range positions {
		quote := s.prices.Quote(ctx, symbol)
		total = total.Add(qty.Mul(quote.Price))
	}

	return models.AccountSnapshot{
		CashBalance:         cash,
		Positions:           positions,
		TotalPortfolioValue: total,
	}, nil
}

// History returns up to n of the most recently resolved orders, most-recent
// last.
func (s *Session) History(ctx context.Context, n int) ([]models.Order, error) {
	return s.log.Recent(ctx, n)
}

// CurrentPrice quotes a symbol through the same oracle-plus-fallback chain
// the order processor uses. The quote's Source tells a live price from a
// simulated one.
func (s *Session) CurrentPrice(ctx context.Context, symbol string) pricing.Quote {
	return s.prices.Quote(ctx, symbol)
}
