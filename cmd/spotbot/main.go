// Command spotbot is a thin menu-driven wrapper over the Binance spot API.
// It covers market, limit, stop-limit, and OCO orders plus open-order
// listing. All order handling happens on the exchange; this program only
// shapes requests and prints results.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/trading"
	tradingBinance "github.com/paperexch/papertrade/internal/trading/binance"
)

var (
	flagLive bool

	log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
)

func init() {
	flag.BoolVar(&flagLive, "live", false, "trade against production instead of the testnet")
}

func main() {
	flag.Parse()

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Binance Spot Trading Bot!")
	apiKey := prompt(scanner, "API Key: ")
	secretKey := prompt(scanner, "API Secret: ")
	if apiKey == "" || secretKey == "" {
		fmt.Println("API credentials are required!")
		return
	}

	executor := tradingBinance.NewSpotExecutor(apiKey, secretKey, !flagLive)
	if !flagLive {
		fmt.Println("Using spot TESTNET")
	}

	runMenu(scanner, executor)
}

func runMenu(scanner *bufio.Scanner, executor *tradingBinance.SpotExecutor) {
	ctx := context.Background()

	for {
		fmt.Println()
		fmt.Println("==================================================")
		fmt.Println("BINANCE SPOT TRADING BOT")
		fmt.Println("==================================================")
		fmt.Println("1. Place Market Order")
		fmt.Println("2. Place Limit Order")
		fmt.Println("3. Place Stop-Limit Order")
		fmt.Println("4. Place OCO Order")
		fmt.Println("5. Check Order Status")
		fmt.Println("6. Cancel Order")
		fmt.Println("7. View Open Orders")
		fmt.Println("8. View Asset Balance")
		fmt.Println("9. Get Current Price")
		fmt.Println("10. Exit")
		fmt.Println("==================================================")

		switch prompt(scanner, "Select an option (1-10): ") {
		case "1":
			placeOrder(ctx, scanner, executor, trading.OrderTypeMarket)
		case "2":
			placeOrder(ctx, scanner, executor, trading.OrderTypeLimit)
		case "3":
			placeOrder(ctx, scanner, executor, trading.OrderTypeStopLimit)
		case "4":
			placeOCOOrder(ctx, scanner, executor)
		case "5":
			symbol := promptSymbol(scanner)
			orderID := prompt(scanner, "Enter order ID: ")
			order, err := executor.GetOrderStatus(ctx, symbol, orderID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nOrder ID: %s\nStatus: %s\nSide: %s\nQuantity: %s\nPrice: %s\n",
				order.OrderID, order.Status, order.Side, order.Quantity, order.Price)
		case "6":
			symbol := promptSymbol(scanner)
			orderID := prompt(scanner, "Enter order ID: ")
			if err := executor.CancelOrder(ctx, symbol, orderID); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nOrder cancelled: %s\n", orderID)
		case "7":
			showOpenOrders(ctx, scanner, executor)
		case "8":
			asset := strings.ToUpper(prompt(scanner, "Enter asset (e.g., BTC): "))
			balance, err := executor.GetBalance(ctx, asset)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nFree %s Balance: %s\n", asset, balance)
		case "9":
			symbol := promptSymbol(scanner)
			price, err := executor.GetPrice(ctx, symbol)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nCurrent Price of %s: %s\n", symbol, price)
		case "10":
			fmt.Println("Goodbye! Happy trading!")
			return
		default:
			fmt.Println("Invalid option. Please select 1-10.")
		}
	}
}

func placeOCOOrder(ctx context.Context, scanner *bufio.Scanner, executor *tradingBinance.SpotExecutor) {
	order := &trading.OCOOrder{
		Symbol: promptSymbol(scanner),
		Side:   strings.ToLower(prompt(scanner, "Enter side (BUY/SELL): ")),
	}

	var err error
	if order.Quantity, err = decimal.NewFromString(prompt(scanner, "Enter quantity: ")); err != nil {
		fmt.Println("Quantity must be a number")
		return
	}
	if order.Price, err = decimal.NewFromString(prompt(scanner, "Enter take-profit limit price: ")); err != nil {
		fmt.Println("Price must be a number")
		return
	}
	if order.StopPrice, err = decimal.NewFromString(prompt(scanner, "Enter stop trigger price: ")); err != nil {
		fmt.Println("Price must be a number")
		return
	}
	if order.StopLimitPrice, err = decimal.NewFromString(prompt(scanner, "Enter stop limit price: ")); err != nil {
		fmt.Println("Price must be a number")
		return
	}

	log.Info("placing OCO order", "symbol", order.Symbol, "side", order.Side,
		"qty", order.Quantity, "price", order.Price, "stop", order.StopPrice)

	if err := executor.PlaceOCOOrder(ctx, order); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nOCO Order Result:\nOrder List ID: %d\nStatus: %s\nLeg Order IDs: %s\n",
		order.OrderListID, order.Status, strings.Join(order.OrderIDs, ", "))
}

func showOpenOrders(ctx context.Context, scanner *bufio.Scanner, executor *tradingBinance.SpotExecutor) {
	symbol := strings.ToUpper(prompt(scanner, "Enter symbol (blank for all): "))
	orders, err := executor.GetOpenOrders(ctx, symbol)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("\nNo open orders")
		return
	}

	fmt.Printf("\nOPEN ORDERS (%d)\n", len(orders))
	for _, order := range orders {
		fmt.Printf("#%s: %s %s %s %s @ %s - %s\n", order.OrderID, order.Side,
			order.Quantity, order.Symbol, order.OrderType, order.Price, order.Status)
	}
}

func placeOrder(ctx context.Context, scanner *bufio.Scanner, executor trading.TradeExecutor, orderType string) {
	order := &trading.Order{
		Symbol:    promptSymbol(scanner),
		Side:      strings.ToLower(prompt(scanner, "Enter side (BUY/SELL): ")),
		OrderType: orderType,
	}

	qty, err := decimal.NewFromString(prompt(scanner, "Enter quantity: "))
	if err != nil {
		fmt.Println("Quantity must be a number")
		return
	}
	order.Quantity = qty

	if orderType == trading.OrderTypeStopLimit {
		stopPrice, err := decimal.NewFromString(prompt(scanner, "Enter stop price: "))
		if err != nil {
			fmt.Println("Price must be a number")
			return
		}
		order.StopPrice = stopPrice
	}

	if orderType == trading.OrderTypeLimit || orderType == trading.OrderTypeStopLimit {
		price, err := decimal.NewFromString(prompt(scanner, "Enter limit price: "))
		if err != nil {
			fmt.Println("Price must be a number")
			return
		}
		order.Price = price
	}

	log.Info("placing order", "symbol", order.Symbol, "side", order.Side,
		"type", order.OrderType, "qty", order.Quantity)

	if err := executor.PlaceOrder(ctx, order); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nOrder Result:\nOrder ID: %s\nStatus: %s\n", order.OrderID, order.Status)
}

func promptSymbol(scanner *bufio.Scanner) string {
	return strings.ToUpper(prompt(scanner, "Enter symbol (e.g., BTCUSDT): "))
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
