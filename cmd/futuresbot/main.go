// Command futuresbot is a thin menu-driven wrapper over the Binance USD-M
// futures API (testnet by default). It adds stop-limit orders on top of the
// spot bot's menu.
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

	fmt.Println("Welcome to the Binance Futures Trading Bot!")
	apiKey := prompt(scanner, "API Key: ")
	secretKey := prompt(scanner, "API Secret: ")
	if apiKey == "" || secretKey == "" {
		fmt.Println("API credentials are required!")
		return
	}

	executor := tradingBinance.NewFuturesExecutor(apiKey, secretKey, !flagLive)
	if !flagLive {
		fmt.Println("Using futures TESTNET")
	}

	// Connection check before entering the menu.
	summary, err := executor.GetAccountSummary(context.Background())
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		return
	}
	log.Info("connected to binance futures", "total_balance", summary.TotalBalance)
	fmt.Printf("Account Balance: %s USDT\n", summary.TotalBalance)

	runMenu(scanner, executor)
}

func runMenu(scanner *bufio.Scanner, executor *tradingBinance.FuturesExecutor) {
	ctx := context.Background()

	for {
		fmt.Println()
		fmt.Println("==================================================")
		fmt.Println("BINANCE FUTURES TRADING BOT")
		fmt.Println("==================================================")
		fmt.Println("1. Place Market Order")
		fmt.Println("2. Place Limit Order")
		fmt.Println("3. Place Stop-Limit Order")
		fmt.Println("4. Check Order Status")
		fmt.Println("5. Cancel Order")
		fmt.Println("6. View Account Balance")
		fmt.Println("7. Get Current Price")
		fmt.Println("8. Exit")
		fmt.Println("==================================================")

		switch prompt(scanner, "Select an option (1-8): ") {
		case "1":
			placeOrder(ctx, scanner, executor, trading.OrderTypeMarket)
		case "2":
			placeOrder(ctx, scanner, executor, trading.OrderTypeLimit)
		case "3":
			placeOrder(ctx, scanner, executor, trading.OrderTypeStopLimit)
		case "4":
			symbol := promptSymbol(scanner)
			orderID := prompt(scanner, "Enter order ID: ")
			order, err := executor.GetOrderStatus(ctx, symbol, orderID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nOrder ID: %s\nStatus: %s\nSide: %s\nQuantity: %s\nPrice: %s\n",
				order.OrderID, order.Status, order.Side, order.Quantity, order.Price)
		case "5":
			symbol := promptSymbol(scanner)
			orderID := prompt(scanner, "Enter order ID: ")
			if err := executor.CancelOrder(ctx, symbol, orderID); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nOrder cancelled: %s\n", orderID)
		case "6":
			summary, err := executor.GetAccountSummary(ctx)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nAccount Balance:\nTotal Balance: %s USDT\nAvailable Balance: %s USDT\nUnrealized PnL: %s USDT\n",
				summary.TotalBalance, summary.AvailableBalance, summary.UnrealizedPnL)
		case "7":
			symbol := promptSymbol(scanner)
			price, err := executor.GetPrice(ctx, symbol)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nCurrent Price of %s: %s\n", symbol, price)
		case "8":
			fmt.Println("Goodbye! Happy trading!")
			return
		default:
			fmt.Println("Invalid option. Please select 1-8.")
		}
	}
}

func placeOrder(ctx context.Context, scanner *bufio.Scanner, executor *tradingBinance.FuturesExecutor, orderType string) {
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
