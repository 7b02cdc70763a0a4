package orderlog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperexch/papertrade/internal/models"
)

func testOrder(id int64) models.Order {
	return models.Order{
		ID:             id,
		Symbol:         "BTCUSDT",
		Side:           models.SideBuy,
		Type:           models.TypeMarket,
		Quantity:       decimal.NewFromInt(1),
		ReferencePrice: decimal.NewFromInt(100),
		ExecutionPrice: decimal.NewFromInt(100),
		Status:         models.StatusFilled,
		Timestamp:      time.Now(),
	}
}

func TestMemoryLog_Recent(t *testing.T) {
	l := NewMemoryLog()
	ctx := context.Background()

	recent, err := l.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	for id := int64(1); id <= 10; id++ {
		require.NoError(t, l.Append(ctx, testOrder(id)))
	}

	tests := []struct {
		name      string
		n         int
		wantLen   int
		wantFirst int64
		wantLast  int64
	}{
		{name: "last three", n: 3, wantLen: 3, wantFirst: 8, wantLast: 10},
		{name: "more than stored", n: 100, wantLen: 10, wantFirst: 1, wantLast: 10},
		{name: "zero", n: 0, wantLen: 0},
		{name: "negative", n: -1, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recent, err := l.Recent(ctx, tt.n)
			require.NoError(t, err)
			require.Len(t, recent, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, recent[0].ID)
				assert.Equal(t, tt.wantLast, recent[tt.wantLen-1].ID)
			}
		})
	}
}

func TestMemoryLog_RecentCopies(t *testing.T) {
	l := NewMemoryLog()
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, testOrder(1)))

	recent, err := l.Recent(ctx, 1)
	require.NoError(t, err)
	recent[0].Status = models.StatusRejected

	again, err := l.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFilled, again[0].Status, "stored orders are immutable")
}

func TestMemoryLog_ReadWhileAppend(t *testing.T) {
	l := NewMemoryLog()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for id := int64(1); id <= 200; id++ {
			_ = l.Append(ctx, testOrder(id))
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			recent, err := l.Recent(ctx, 10)
			assert.NoError(t, err)
			// Whatever slice we observe must be internally ordered.
			for j := 1; j < len(recent); j++ {
				assert.Greater(t, recent[j].ID, recent[j-1].ID)
			}
		}
	}()

	wg.Wait()
	assert.Equal(t, 200, l.Len())
}
