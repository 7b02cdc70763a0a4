package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/models"
)

var (
	// ErrInsufficientFunds is returned by Debit when the debit would drive
	// the cash balance negative. The ledger refuses the mutation instead of
	// clamping; callers must check affordability first.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientPosition is returned by DecreasePosition when the
	// requested quantity exceeds the held amount.
	ErrInsufficientPosition = errors.New("insufficient position")

	// ErrInvalidAmount is returned when a mutator receives a non-positive
	// amount. Mutation amounts are caller bugs when non-positive, not
	// business outcomes.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Ledger owns the cash balance and per-symbol positions of one simulated
// account. After any successful mutation the balance is non-negative and
// every stored position is strictly positive; positions that reach zero are
// removed, so zero and absent are the same thing.
type Ledger struct {
	mu        sync.RWMutex
	cash      decimal.Decimal
	positions map[string]decimal.Decimal
}

// New creates a ledger with the given starting cash balance.
func New(startingBalance decimal.Decimal) (*Ledger, error) {
	if startingBalance.IsNegative() {
		return nil, fmt.Errorf("starting balance must not be negative, got %s", startingBalance)
	}
	return &Ledger{
		cash:      startingBalance,
		positions: make(map[string]decimal.Decimal),
	}, nil
}

// Credit adds amount to the cash balance.
func (l *Ledger) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("credit %s: %w", amount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cash = l.cash.Add(amount)
	return nil
}

// Debit removes amount from the cash balance, failing with
// ErrInsufficientFunds if the balance would go negative.
func (l *Ledger) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("debit %s: %w", amount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cash.LessThan(amount) {
		return fmt.Errorf("debit %s with balance %s: %w", amount, l.cash, ErrInsufficientFunds)
	}
	l.cash = l.cash.Sub(amount)
	return nil
}

// IncreasePosition adds qty to the position held for symbol.
func (l *Ledger) IncreasePosition(symbol string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("increase position by %s: %w", qty, ErrInvalidAmount)
	}
	symbol = models.NormalizeSymbol(symbol)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.positions[symbol] = l.positions[symbol].Add(qty)
	return nil
}

// DecreasePosition removes qty from the position held for symbol, failing
// with ErrInsufficientPosition if less than qty is held. A position reduced
// to zero is deleted.
func (l *Ledger) DecreasePosition(symbol string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("decrease position by %s: %w", qty, ErrInvalidAmount)
	}
	symbol = models.NormalizeSymbol(symbol)

	l.mu.Lock()
	defer l.mu.Unlock()

	held := l.positions[symbol]
	if held.LessThan(qty) {
		return fmt.Errorf("decrease %s position by %s with %s held: %w",
			symbol, qty, held, ErrInsufficientPosition)
	}

	remaining := held.Sub(qty)
	if remaining.IsZero() {
		delete(l.positions, symbol)
	} else {
		l.positions[symbol] = remaining
	}
	return nil
}

// CashBalance returns the current cash balance.
func (l *Ledger) CashBalance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cash
}

// Position returns the quantity held for symbol; zero when absent.
func (l *Ledger) Position(symbol string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.positions[models.NormalizeSymbol(symbol)]
}

// Snapshot returns a copy of the balance and positions. The returned map is
// owned by the caller; mutating it does not touch the ledger.
func (l *Ledger) Snapshot() (decimal.Decimal, map[string]decimal.Decimal) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	positions := make(map[string]decimal.Decimal, len(l.positions))
	for symbol, qty := range l.positions {
		positions[symbol] = qty
	}
	return l.cash, positions
}
