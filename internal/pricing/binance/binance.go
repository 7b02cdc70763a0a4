package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/paperexch/papertrade/internal/models"
	"github.com/paperexch/papertrade/internal/pricing"
	"github.com/paperexch/papertrade/internal/utils/request"
)

// Source fetches current prices from the Binance public ticker endpoint.
// No authentication is required for price data.
type Source struct {
	baseURL    string
	httpClient *resty.Client
}

// NewSource creates a Binance price source. An optional base URL overrides
// the production endpoint, which tests use to point at a local server.
func NewSource(baseURL ...string) *Source {
	baseURL = append(baseURL, "https://api.binance.com")
	return &Source{
		baseURL:    baseURL[0],
		httpClient: request.Request,
	}
}

func (s *Source) Name() string {
	return "binance"
}

// CurrentPrice implements pricing.Oracle. Any transport failure, non-200
// status, or malformed price string is reported as ErrPriceUnavailable.
func (s *Source) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = models.NormalizeSymbol(symbol)
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", s.baseURL, symbol)

	resp, err := s.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", pricing.ErrPriceUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: unexpected status code %d", pricing.ErrPriceUnavailable, resp.StatusCode())
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}

	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode response: %v", pricing.ErrPriceUnavailable, err)
	}

	if ticker.Price == "" {
		return decimal.Zero, fmt.Errorf("%w: missing price field", pricing.ErrPriceUnavailable)
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to parse price %q: %v", pricing.ErrPriceUnavailable, ticker.Price, err)
	}

	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s", pricing.ErrPriceUnavailable, price)
	}

	return price, nil
}
