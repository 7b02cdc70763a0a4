package orderlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/models"

	_ "github.com/lib/pq"
)

// PostgresLog persists the order history across process restarts. Rows are
// insert-only; the order id assigned by the engine is the primary key, so
// identifier uniqueness is enforced by the database as well.
type PostgresLog struct {
	db *sql.DB
}

func NewPostgresLog(connStr string) (*PostgresLog, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	l := &PostgresLog{db: db}

	if err := l.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return l, nil
}

// Append implements Log.
func (l *PostgresLog) Append(ctx context.Context, order models.Order) error {
	query := `
        INSERT INTO orders (
            id, symbol, side, order_type, quantity, limit_price,
            reference_price, execution_price, price_source,
            status, reason, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
        )
    `

	_, err := l.db.ExecContext(ctx, query,
		order.ID,
		order.Symbol,
		string(order.Side),
		string(order.Type),
		order.Quantity.String(),
		order.LimitPrice.String(),
		order.ReferencePrice.String(),
		order.ExecutionPrice.String(),
		order.PriceSource,
		string(order.Status),
		string(order.Reason),
		order.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("failed to append order: %w", err)
	}

	return nil
}

// Recent implements Log.
func (l *PostgresLog) Recent(ctx context.Context, n int) ([]models.Order, error) {
	if n <= 0 {
		return nil, nil
	}

	query := `
        SELECT id, symbol, side, order_type, quantity, limit_price,
               reference_price, execution_price, price_source,
               status, reason, created_at
        FROM orders
        ORDER BY id DESC
        LIMIT $1
    `

	rows, err := l.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	var result []models.Order
	for rows.Next() {
		var (
			order                                     models.Order
			quantity, limitPrice, refPrice, execPrice string
		)

		err := rows.Scan(
			&order.ID,
			&order.Symbol,
			(*string)(&order.Side),
			(*string)(&order.Type),
			&quantity,
			&limitPrice,
			&refPrice,
			&execPrice,
			&order.PriceSource,
			(*string)(&order.Status),
			(*string)(&order.Reason),
			&order.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		if order.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		if order.LimitPrice, err = decimal.NewFromString(limitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse limit price: %w", err)
		}
		if order.ReferencePrice, err = decimal.NewFromString(refPrice); err != nil {
			return nil, fmt.Errorf("failed to parse reference price: %w", err)
		}
		if order.ExecutionPrice, err = decimal.NewFromString(execPrice); err != nil {
			return nil, fmt.Errorf("failed to parse execution price: %w", err)
		}

		result = append(result, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	// Most-recent last, matching MemoryLog.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, nil
}

// Close releases the underlying database handle.
func (l *PostgresLog) Close() error {
	return l.db.Close()
}

func (l *PostgresLog) initTables() error {
	query := `CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY,
		symbol VARCHAR(50) NOT NULL,
		side VARCHAR(10) NOT NULL,
		order_type VARCHAR(10) NOT NULL,
		quantity NUMERIC(28, 10) NOT NULL,
		limit_price NUMERIC(28, 10) NOT NULL,
		reference_price NUMERIC(28, 10) NOT NULL,
		execution_price NUMERIC(28, 10) NOT NULL,
		price_source VARCHAR(20) NOT NULL,
		status VARCHAR(10) NOT NULL,
		reason VARCHAR(30),
		created_at TIMESTAMP NOT NULL
	)`

	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
