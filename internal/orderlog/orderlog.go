package orderlog

import (
	"context"
	"sync"

	"github.com/paperexch/papertrade/internal/models"
)

// Log is an append-only record of resolved orders. Orders are immutable
// once appended; there is no mutation or deletion API.
type Log interface {
	// Append stores a resolved order.
	Append(ctx context.Context, order models.Order) error

	// Recent returns up to n of the most recently appended orders,
	// most-recent last.
	Recent(ctx context.Context, n int) ([]models.Order, error)
}

// MemoryLog keeps the order history in memory. It is safe to read while
// being appended to.
type MemoryLog struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append implements Log.
func (l *MemoryLog) Append(ctx context.Context, order models.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.orders = append(l.orders, order)
	return nil
}

// Recent implements Log.
func (l *MemoryLog) Recent(ctx context.Context, n int) ([]models.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || len(l.orders) == 0 {
		return nil, nil
	}
	if n > len(l.orders) {
		n = len(l.orders)
	}

	recent := make([]models.Order, n)
	copy(recent, l.orders[len(l.orders)-n:])
	return recent, nil
}

// Len returns the number of appended orders.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
