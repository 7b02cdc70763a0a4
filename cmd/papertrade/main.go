package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/advisor"
	advisorOpenAI "github.com/paperexch/papertrade/internal/advisor/openai"
	"github.com/paperexch/papertrade/internal/configs"
	"github.com/paperexch/papertrade/internal/engine"
	"github.com/paperexch/papertrade/internal/ledger"
	"github.com/paperexch/papertrade/internal/models"
	"github.com/paperexch/papertrade/internal/orderlog"
	"github.com/paperexch/papertrade/internal/pricing"
	pricingBinance "github.com/paperexch/papertrade/internal/pricing/binance"
)

var (
	flagconf string

	// JSON logs go to stderr so the interactive menu owns stdout.
	log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf config.json")
}

func main() {
	flag.Parse()

	// 加载配置
	config := &configs.Config{}
	if flagconf != "" {
		configFile, err := os.ReadFile(flagconf)
		if err != nil {
			log.Error("Error reading config file", "err", err)
			return
		}
		if err := json.Unmarshal(configFile, config); err != nil {
			log.Error("Error parsing config file", "err", err)
			return
		}
	}
	config.SetDefaults()

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	// 初始化各个组件
	var liveSource pricing.Oracle
	if config.Paper.OracleBaseURL != "" {
		liveSource = pricingBinance.NewSource(config.Paper.OracleBaseURL)
	} else {
		liveSource = pricingBinance.NewSource()
	}

	oracleTimeout, err := time.ParseDuration(config.Paper.OracleTimeout)
	if err != nil {
		oracleTimeout = pricing.DefaultTimeout
	}

	prices := pricing.NewFallback(liveSource, config.Paper.FallbackPrices,
		config.Paper.DefaultPrice, oracleTimeout, log)

	book, err := ledger.New(config.Paper.StartingBalance)
	if err != nil {
		log.Error("Error creating ledger", "err", err)
		return
	}

	var history orderlog.Log = orderlog.NewMemoryLog()
	if config.Database.ConnStr != "" {
		pgLog, err := orderlog.NewPostgresLog(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating order log storage", "err", err)
			return
		}
		defer pgLog.Close()
		history = pgLog
	}

	session, err := engine.NewSession(book, prices, history, log)
	if err != nil {
		log.Error("Error creating session", "err", err)
		return
	}

	var reviewer advisor.Advisor
	if config.AdvisorConfig.APIKey != "" {
		reviewer = advisorOpenAI.NewSessionAdvisor(config.AdvisorConfig.APIKey,
			config.AdvisorConfig.ModelType, config.AdvisorConfig.BaseURL)
	}

	fmt.Println("PAPER TRADING INITIALIZED")
	fmt.Printf("Starting Balance: %s USDT\n", config.Paper.StartingBalance)
	fmt.Println("Note: this is SIMULATED trading (no real money)")

	runMenu(session, reviewer)
}

func runMenu(session *engine.Session, reviewer advisor.Advisor) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Println()
		fmt.Println("========================================")
		fmt.Println("PAPER TRADING")
		fmt.Println("========================================")
		fmt.Println("1. Place Market Order")
		fmt.Println("2. Place Limit Order")
		fmt.Println("3. View Account Balance")
		fmt.Println("4. View Order History")
		fmt.Println("5. Get Current Price")
		fmt.Println("6. Review Session")
		fmt.Println("7. Exit")
		fmt.Println("========================================")

		switch prompt(scanner, "Select option (1-7): ") {
		case "1":
			placeOrder(ctx, scanner, session, models.TypeMarket)
		case "2":
			placeOrder(ctx, scanner, session, models.TypeLimit)
		case "3":
			showBalance(ctx, session)
		case "4":
			showHistory(ctx, session)
		case "5":
			symbol := prompt(scanner, "Symbol (e.g., BTCUSDT): ")
			quote := session.CurrentPrice(ctx, symbol)
			fmt.Printf("\n%s Current Price: %s (%s)\n", quote.Symbol, quote.Price, quote.Source)
		case "6":
			reviewSession(ctx, session, reviewer)
		case "7":
			fmt.Println("Happy paper trading!")
			return
		default:
			fmt.Println("Invalid option")
		}
	}
}

func placeOrder(ctx context.Context, scanner *bufio.Scanner, session *engine.Session, typ models.OrderType) {
	symbol := prompt(scanner, "Symbol (e.g., BTCUSDT): ")
	side, ok := models.ParseSide(prompt(scanner, "Side (BUY/SELL): "))
	if !ok {
		fmt.Println("Side must be BUY or SELL")
		return
	}
	qty, err := decimal.NewFromString(prompt(scanner, "Quantity: "))
	if err != nil {
		fmt.Println("Quantity must be a number")
		return
	}

	var order models.Order
	if typ == models.TypeLimit {
		limitPrice, err := decimal.NewFromString(prompt(scanner, "Limit Price: "))
		if err != nil {
			fmt.Println("Limit price must be a number")
			return
		}
		order, err = session.PlaceLimitOrder(ctx, symbol, side, qty, limitPrice)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	} else {
		order, err = session.PlaceMarketOrder(ctx, symbol, side, qty)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	printOrder(order)
}

func printOrder(order models.Order) {
	fmt.Printf("\nOrder #%d: %s %s %s %s\n",
		order.ID, order.Side, order.Quantity, order.Symbol, order.Type)
	fmt.Printf("Status: %s\n", order.Status)
	switch order.Status {
	case models.StatusFilled:
		fmt.Printf("Execution Price: %s (%s)\n", order.ExecutionPrice, order.PriceSource)
		fmt.Printf("Cost: %s\n", order.Cost())
	case models.StatusRejected:
		fmt.Printf("Reason: %s\n", order.Reason)
		fmt.Printf("Market Price at Evaluation: %s (%s)\n", order.ReferencePrice, order.PriceSource)
	}
}

func showBalance(ctx context.Context, session *engine.Session) {
	snapshot, err := session.Balance(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("\nACCOUNT SUMMARY")
	fmt.Printf("Cash Balance: %s\n", snapshot.CashBalance)
	fmt.Printf("Total Portfolio: %s\n", snapshot.TotalPortfolioValue)
	if len(snapshot.Positions) == 0 {
		fmt.Println("Positions: none")
		return
	}
	fmt.Println("Positions:")
	for symbol, qty := range snapshot.Positions {
		fmt.Printf("  %s: %s\n", symbol, qty)
	}
}

func showHistory(ctx context.Context, session *engine.Session) {
	orders, err := session.History(ctx, 10)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("\nNo orders yet")
		return
	}

	fmt.Println("\nRECENT ORDERS")
	for _, order := range orders {
		fmt.Printf("#%d: %s %s %s %s - %s", order.ID, order.Side, order.Quantity,
			order.Symbol, order.Type, order.Status)
		if order.Reason != models.ReasonNone {
			fmt.Printf(" (%s)", order.Reason)
		}
		fmt.Println()
	}
}

func reviewSession(ctx context.Context, session *engine.Session, reviewer advisor.Advisor) {
	if reviewer == nil {
		fmt.Println("Advisor is not configured (set advisor_config.api_key)")
		return
	}

	snapshot, err := session.Balance(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	orders, err := session.History(ctx, 50)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	review, err := reviewer.ReviewSession(ctx, snapshot, orders)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("\nSESSION REVIEW")
	fmt.Println(review)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return scanner.Text()
}
