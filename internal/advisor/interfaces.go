package advisor

import (
	"context"

	"github.com/paperexch/papertrade/internal/models"
)

// Advisor turns a finished (or in-progress) paper-trading session into a
// short natural-language review. Purely advisory: nothing it returns feeds
// back into order processing.
type Advisor interface {
	// ReviewSession summarizes the account state and recent orders
	ReviewSession(ctx context.Context, snapshot models.AccountSnapshot, orders []models.Order) (string, error)
}
