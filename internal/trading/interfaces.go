package trading

import (
	"context"

	"github.com/shopspring/decimal"
)

// TradeExecutor defines methods for placing real orders against an exchange.
// The CLI bots are thin wrappers over this interface; all fill logic lives
// on the exchange side.
type TradeExecutor interface {
	// PlaceOrder places a new order and fills in its exchange-assigned
	// id and status on success
	PlaceOrder(ctx context.Context, order *Order) error

	// CancelOrder cancels an existing order
	CancelOrder(ctx context.Context, symbol string, orderID string) error

	// GetOrderStatus retrieves the status of an order
	GetOrderStatus(ctx context.Context, symbol, orderID string) (*Order, error)

	// GetBalance retrieves the free balance for an asset
	GetBalance(ctx context.Context, asset string) (decimal.Decimal, error)

	// GetPrice retrieves the current price for a symbol
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Order 订单结构
type Order struct {
	Symbol     string          // 交易对
	Side       string          // buy 或 sell
	Quantity   decimal.Decimal // 数量
	Price      decimal.Decimal // 价格（市价单可为0）
	StopPrice  decimal.Decimal // 触发价（仅止损限价单）
	OrderType  string          // market、limit 或 stop_limit
	Status     string          // 订单状态
	OrderID    string          // 订单ID字符串格式
	RawOrderID int64           // 订单ID数字格式
}

// OCOOrder OCO订单结构（止盈限价单 + 止损限价单成对下单，一腿成交另一腿自动撤销）
type OCOOrder struct {
	Symbol         string          // 交易对
	Side           string          // buy 或 sell
	Quantity       decimal.Decimal // 数量
	Price          decimal.Decimal // 止盈限价
	StopPrice      decimal.Decimal // 止损触发价
	StopLimitPrice decimal.Decimal // 止损限价
	OrderListID    int64           // 订单组ID
	OrderIDs       []string        // 两腿的订单ID
	Status         string          // 订单组状态
}

const (
	OrderTypeMarket    = "market"
	OrderTypeLimit     = "limit"
	OrderTypeStopLimit = "stop_limit"
)
