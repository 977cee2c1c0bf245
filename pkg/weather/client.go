// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.openweathermap.org"

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

// Forecast is a single day's outlook. Only the fallback payload fills
// these today; the free current-conditions endpoint carries none.
type Forecast struct {
	Date        string `json:"date"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Conditions is the dashboard's weather payload.
type Conditions struct {
	Temp        int        `json:"temp"`
	FeelsLike   int        `json:"feelsLike"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Humidity    int        `json:"humidity"`
	WindSpeed   int        `json:"windSpeed"`
	Forecast    []Forecast `json:"forecast"`
}

type owmResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// FetchCurrent returns current conditions for the given coordinates,
// temperatures in metric units, wind converted from m/s to km/h.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon string) (*Conditions, error) {
	url := fmt.Sprintf("%s/data/2.5/weather?lat=%s&lon=%s&units=metric&appid=%s", c.baseURL, lat, lon, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: status %d", resp.StatusCode)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("weather: decode: %w", err)
	}
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("weather: empty conditions")
	}

	return &Conditions{
		Temp:        int(math.Round(data.Main.Temp)),
		FeelsLike:   int(math.Round(data.Main.FeelsLike)),
		Description: data.Weather[0].Description,
		Icon:        strings.ToLower(data.Weather[0].Main),
		Humidity:    data.Main.Humidity,
		WindSpeed:   int(math.Round(data.Wind.Speed * 3.6)),
		Forecast:    []Forecast{},
	}, nil
}
