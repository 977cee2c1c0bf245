// Package starling is a minimal read-only client for the Starling Bank
// v2 API: just enough to resolve the primary account's balance.
package starling

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.starlingbank.com"

// minorUnitScale converts pence to pounds.
var minorUnitScale = decimal.NewFromInt(100)

type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// Balance is the primary account's cleared and effective balance in
// major units.
type Balance struct {
	Balance          decimal.Decimal
	EffectiveBalance decimal.Decimal
	Currency         string
}

type accountsResponse struct {
	Accounts []struct {
		AccountUID string `json:"accountUid"`
	} `json:"accounts"`
}

type signedAmount struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"minorUnits"`
}

type balanceResponse struct {
	ClearedBalance   signedAmount `json:"clearedBalance"`
	EffectiveBalance signedAmount `json:"effectiveBalance"`
}

// FetchBalance resolves the first account's UID, then its balance.
func (c *Client) FetchBalance(ctx context.Context) (*Balance, error) {
	var accounts accountsResponse
	if err := c.get(ctx, "/api/v2/accounts", &accounts); err != nil {
		return nil, err
	}
	if len(accounts.Accounts) == 0 {
		return nil, fmt.Errorf("starling: no accounts on token")
	}

	var balance balanceResponse
	path := "/api/v2/accounts/" + accounts.Accounts[0].AccountUID + "/balance"
	if err := c.get(ctx, path, &balance); err != nil {
		return nil, err
	}

	currency := balance.ClearedBalance.Currency
	if currency == "" {
		currency = "GBP"
	}

	return &Balance{
		Balance:          decimal.NewFromInt(balance.ClearedBalance.MinorUnits).Div(minorUnitScale),
		EffectiveBalance: decimal.NewFromInt(balance.EffectiveBalance.MinorUnits).Div(minorUnitScale),
		Currency:         currency,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("starling: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("starling: %s: status %d: %s", path, resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
