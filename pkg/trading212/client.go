// Package trading212 reads the equity account summary from the
// Trading 212 live API.
package trading212

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://live.trading212.com"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// Summary is the brokerage account's headline numbers in account
// currency.
type Summary struct {
	TotalValue    decimal.Decimal
	Cash          decimal.Decimal
	InvestedValue decimal.Decimal
	UnrealisedPnL decimal.Decimal
	Currency      string
}

type infoResponse struct {
	CurrencyCode string `json:"currencyCode"`
}

type cashResponse struct {
	Total    decimal.Decimal `json:"total"`
	Free     decimal.Decimal `json:"free"`
	Invested decimal.Decimal `json:"invested"`
	PPL      decimal.Decimal `json:"ppl"`
}

// FetchSummary combines the account info and cash endpoints. The cash
// call failing only loses the numeric detail, not the whole summary.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	var info infoResponse
	if err := c.get(ctx, "/api/v0/equity/account/info", &info); err != nil {
		return nil, err
	}

	var cash cashResponse
	if err := c.get(ctx, "/api/v0/equity/account/cash", &cash); err != nil {
		cash = cashResponse{}
	}

	currency := info.CurrencyCode
	if currency == "" {
		currency = "GBP"
	}

	return &Summary{
		TotalValue:    cash.Total,
		Cash:          cash.Free,
		InvestedValue: cash.Invested,
		UnrealisedPnL: cash.PPL,
		Currency:      currency,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trading212: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("trading212: %s: status %d: %s", path, resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
