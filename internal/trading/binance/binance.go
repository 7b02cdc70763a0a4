package binance

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/trading"

	"github.com/adshao/go-binance/v2"
)

// SpotExecutor implements trading.TradeExecutor against the Binance spot
// API.
type SpotExecutor struct {
	client    *binance.Client
	apiKey    string
	secretKey string
	mu        sync.RWMutex
}

// NewSpotExecutor creates a new SpotExecutor instance. Passing debug=true
// routes all requests to the spot testnet.
func NewSpotExecutor(apiKey, secretKey string, debug ...bool) *SpotExecutor {
	debug = append(debug, false)
	if debug[0] {
		binance.UseTestnet = true
	}

	client := binance.NewClient(apiKey, secretKey)

	return &SpotExecutor{
		client:    client,
		apiKey:    apiKey,
		secretKey: secretKey,
	}
}

// PlaceOrder implements order placement for Binance spot
func (b *SpotExecutor) PlaceOrder(ctx context.Context, order *trading.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Convert order type to Binance format
	var orderType binance.OrderType
	switch order.OrderType {
	case trading.OrderTypeMarket:
		orderType = binance.OrderTypeMarket
	case trading.OrderTypeLimit:
		orderType = binance.OrderTypeLimit
	case trading.OrderTypeStopLimit:
		orderType = binance.OrderTypeStopLossLimit
	default:
		return fmt.Errorf("unsupported order type: %s", order.OrderType)
	}

	// Convert side to Binance format
	var side binance.SideType
	switch order.Side {
	case "buy":
		side = binance.SideTypeBuy
	case "sell":
		side = binance.SideTypeSell
	default:
		return fmt.Errorf("invalid side: %s", order.Side)
	}

	// Create order request
	orderService := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Type(orderType)

	orderService.Quantity(order.Quantity.String())

	// Set price for limit orders
	if orderType == binance.OrderTypeLimit {
		orderService.TimeInForce(binance.TimeInForceTypeGTC)
		orderService.Price(order.Price.String())
	}

	// Stop-limit orders carry both a trigger price and a limit price
	if orderType == binance.OrderTypeStopLossLimit {
		orderService.TimeInForce(binance.TimeInForceTypeGTC)
		orderService.Price(order.Price.String())
		orderService.StopPrice(order.StopPrice.String())
	}

	// Execute order
	result, err := orderService.Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	// Update order with response data
	order.Status = string(result.Status)
	order.RawOrderID = result.OrderID
	order.OrderID = strconv.FormatInt(result.OrderID, 10)
	return nil
}

// PlaceOCOOrder places a take-profit limit order paired with a stop-loss
// limit order. The exchange cancels the surviving leg once the other fills.
func (b *SpotExecutor) PlaceOCOOrder(ctx context.Context, order *trading.OCOOrder) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var side binance.SideType
	switch order.Side {
	case "buy":
		side = binance.SideTypeBuy
	case "sell":
		side = binance.SideTypeSell
	default:
		return fmt.Errorf("invalid side: %s", order.Side)
	}

	result, err := b.client.NewCreateOCOService().
		Symbol(order.Symbol).
		Side(side).
		Quantity(order.Quantity.String()).
		Price(order.Price.String()).
		StopPrice(order.StopPrice.String()).
		StopLimitPrice(order.StopLimitPrice.String()).
		StopLimitTimeInForce(binance.TimeInForceTypeGTC).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to place OCO order: %w", err)
	}

	order.OrderListID = result.OrderListID
	order.Status = result.ListOrderStatus
	order.OrderIDs = order.OrderIDs[:0]
	for _, leg := range result.Orders {
		order.OrderIDs = append(order.OrderIDs, strconv.FormatInt(leg.OrderID, 10))
	}
	return nil
}

// GetOpenOrders lists currently open orders, optionally filtered by symbol.
func (b *SpotExecutor) GetOpenOrders(ctx context.Context, symbol string) ([]*trading.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	service := b.client.NewListOpenOrdersService()
	if symbol != "" {
		service.Symbol(symbol)
	}

	results, err := service.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get open orders: %w", err)
	}

	orders := make([]*trading.Order, 0, len(results))
	for _, result := range results {
		price, err := decimal.NewFromString(result.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		quantity, err := decimal.NewFromString(result.OrigQuantity)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		orders = append(orders, &trading.Order{
			Symbol:     result.Symbol,
			Side:       string(result.Side),
			Quantity:   quantity,
			Price:      price,
			OrderType:  string(result.Type),
			Status:     string(result.Status),
			OrderID:    strconv.FormatInt(result.OrderID, 10),
			RawOrderID: result.OrderID,
		})
	}
	return orders, nil
}

// CancelOrder implements order cancellation for Binance spot
func (b *SpotExecutor) CancelOrder(ctx context.Context, symbol string, orderID string) error {
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

// GetOrderStatus implements order status retrieval for Binance spot
func (b *SpotExecutor) GetOrderStatus(ctx context.Context, symbol, orderID string) (*trading.Order, error) {
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

// GetBalance implements balance retrieval for Binance spot
func (b *SpotExecutor) GetBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// Get account information
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get account info: %w", err)
	}

	// Find balance for specified asset
	for _, balance := range account.Balances {
		if balance.Asset == asset {
			free, err := decimal.NewFromString(balance.Free)
			if err != nil {
				return decimal.Zero, fmt.Errorf("failed to parse balance: %w", err)
			}
			return free, nil
		}
	}

	return decimal.Zero, fmt.Errorf("balance not found for asset: %s", asset)
}

// GetPrice implements price retrieval for Binance spot
func (b *SpotExecutor) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
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
