package binance

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/trading"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
)

// FuturesExecutor implements trading.TradeExecutor against the Binance
// USD-M futures API. Unlike the spot executor it also supports stop-limit
// orders.
type FuturesExecutor struct {
	client *futures.Client
	mu     sync.RWMutex
}

// NewFuturesExecutor creates a new FuturesExecutor instance. Passing
// debug=true routes all requests to the futures testnet.
func NewFuturesExecutor(apiKey, secretKey string, debug ...bool) *FuturesExecutor {
	debug = append(debug, false)
	if debug[0] {
		futures.UseTestnet = true
	}

	return &FuturesExecutor{
		client: binance.NewFuturesClient(apiKey, secretKey),
	}
}

// PlaceOrder implements order placement for Binance futures
func (b *FuturesExecutor) PlaceOrder(ctx context.Context, order *trading.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var side futures.SideType
	switch order.Side {
	case "buy":
		side = futures.SideTypeBuy
	case "sell":
		side = futures.SideTypeSell
	default:
		return fmt.Errorf("invalid side: %s", order.Side)
	}

	orderService := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side)

	switch order.OrderType {
	case trading.OrderTypeMarket:
		orderService.Type(futures.OrderTypeMarket)
	case trading.OrderTypeLimit:
		orderService.Type(futures.OrderTypeLimit).
			TimeInForce(futures.TimeInForceTypeGTC).
			Price(order.Price.String())
	case trading.OrderTypeStopLimit:
		// STOP on futures is a stop-limit: triggers at StopPrice, rests at
		// Price.
		orderService.Type(futures.OrderTypeStop).
			TimeInForce(futures.TimeInForceTypeGTC).
			Price(order.Price.String()).
			StopPrice(order.StopPrice.String())
	default:
		return fmt.Errorf("unsupported order type: %s", order.OrderType)
	}

	orderService.Quantity(order.Quantity.String())

	result, err := orderService.Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	order.Status = string(result.Status)
	order.RawOrderID = result.OrderID
	order.OrderID = strconv.FormatInt(result.OrderID, 10)
	return nil
}

// CancelOrder implements order cancellation for Binance futures
func (b *FuturesExecutor) CancelOrder(ctx context.Context, symbol string, orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order ID: %w", err)
	}

	_, err = b.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(id).
		Do(ctx)

	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	return nil
}

// GetOrderStatus implements order status retrieval for Binance futures
func (b *FuturesExecutor) GetOrderStatus(ctx context.Context, symbol, orderID string) (*trading.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID: %w", err)
	}

	result, err := b.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(id).
		Do(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get order status: %w", err)
	}

	price, err := decimal.NewFromString(result.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	quantity, err := decimal.NewFromString(result.OrigQuantity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}

	return &trading.Order{
		Symbol:     result.Symbol,
		Side:       string(result.Side),
		Quantity:   quantity,
		Price:      price,
		OrderType:  string(result.Type),
		Status:     string(result.Status),
		OrderID:    strconv.FormatInt(result.OrderID, 10),
		RawOrderID: result.OrderID,
	}, nil
}

// GetBalance implements balance retrieval for Binance futures
func (b *FuturesExecutor) GetBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	balances, err := b.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balances: %w", err)
	}

	for _, balance := range balances {
		if balance.Asset == asset {
			free, err := decimal.NewFromString(balance.AvailableBalance)
			if err != nil {
				return decimal.Zero, fmt.Errorf("failed to parse balance: %w", err)
			}
			return free, nil
		}
	}

	return decimal.Zero, fmt.Errorf("balance not found for asset: %s", asset)
}

// GetPrice implements price retrieval for Binance futures
func (b *FuturesExecutor) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get price: %w", err)
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("no price returned for symbol: %s", symbol)
	}

	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price: %w", err)
	}
	return price, nil
}

// AccountSummary is the futures account overview shown by the CLI.
type AccountSummary struct {
	TotalBalance     decimal.Decimal
	AvailableBalance decimal.Decimal
	UnrealizedPnL    decimal.Decimal
}

// GetAccountSummary returns wallet totals for the futures account.
func (b *FuturesExecutor) GetAccountSummary(ctx context.Context) (*AccountSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	total, err := decimal.NewFromString(account.TotalWalletBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total balance: %w", err)
	}
	available, err := decimal.NewFromString(account.AvailableBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse available balance: %w", err)
	}
	pnl, err := decimal.NewFromString(account.TotalUnrealizedProfit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unrealized pnl: %w", err)
	}

	return &AccountSummary{
		TotalBalance:     total,
		AvailableBalance: available,
		UnrealizedPnL:    pnl,
	}, nil
}
