// Package yahoo fetches quotes from the Yahoo Finance v8 chart API,
// which needs no API key but insists on a browser-ish User-Agent.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// PricePoint is one closing price on the chart.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Quote is a symbol's current state plus three months of daily closes.
type Quote struct {
	Symbol            string       `json:"symbol"`
	Name              string       `json:"name"`
	CurrentPrice      float64      `json:"currentPrice"`
	PreviousClose     float64      `json:"previousClose"`
	ChangeAmount      float64      `json:"changeAmount"`
	ChangePercent     float64      `json:"changePercent"`
	RegularMarketTime int64        `json:"regularMarketTime"`
	MarketState       string       `json:"marketState"`
	Currency          string       `json:"currency"`
	History           []PricePoint `json:"history"`
	Intraday          []PricePoint `json:"intraday,omitempty"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
				MarketState        string  `json:"marketState"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchQuote returns the daily 3-month chart and headline numbers for
// symbol.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	data, err := c.fetchChart(ctx, symbol, "1d", "3mo")
	if err != nil {
		return nil, err
	}

	result := data.Chart.Result
	if len(result) == 0 {
		return nil, fmt.Errorf("yahoo: no chart result for %s", symbol)
	}
	r := result[0]
	meta := r.Meta

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	previousClose := meta.ChartPreviousClose
	if previousClose == 0 {
		previousClose = meta.PreviousClose
	}

	current := decimal.NewFromFloat(meta.RegularMarketPrice)
	previous := decimal.NewFromFloat(previousClose)
	change := current.Sub(previous)
	changePercent := decimal.Zero
	if previous.IsPositive() {
		changePercent = change.Div(previous).Mul(decimal.NewFromInt(100))
	}

	return &Quote{
		Symbol:            meta.Symbol,
		Name:              name,
		CurrentPrice:      round2(current),
		PreviousClose:     round2(previous),
		ChangeAmount:      round2(change),
		ChangePercent:     round2(changePercent),
		RegularMarketTime: meta.RegularMarketTime,
		MarketState:       meta.MarketState,
		Currency:          meta.Currency,
		History:           buildSeries(r.Timestamp, closes(r.Indicators.Quote), "2006-01-02"),
	}, nil
}

// FetchIntraday returns the 5-minute series for the current day.
func (c *Client) FetchIntraday(ctx context.Context, symbol string) ([]PricePoint, error) {
	data, err := c.fetchChart(ctx, symbol, "5m", "1d")
	if err != nil {
		return nil, err
	}

	result := data.Chart.Result
	if len(result) == 0 {
		return nil, nil
	}
	r := result[0]
	return buildSeries(r.Timestamp, closes(r.Indicators.Quote), "15:04"), nil
}

func (c *Client) fetchChart(ctx context.Context, symbol, interval, rng string) (*chartResponse, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s", c.baseURL, symbol, interval, rng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: %s: status %d", symbol, resp.StatusCode)
	}

	var data chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("yahoo: %s: decode: %w", symbol, err)
	}
	return &data, nil
}

type quoteIndicators []struct {
	Close []*float64 `json:"close"`
}

func closes(quote quoteIndicators) []*float64 {
	if len(quote) == 0 {
		return nil
	}
	return quote[0].Close
}

func buildSeries(timestamps []int64, closes []*float64, layout string) []PricePoint {
	series := make([]PricePoint, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, PricePoint{
			Date:  time.Unix(ts, 0).UTC().Format(layout),
			Price: round2(decimal.NewFromFloat(*closes[i])),
		})
	}
	return series
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
