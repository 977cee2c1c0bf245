package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"rcc-backend/pkg/weather"
)

const cacheTTL = time.Hour

// ConditionsFetcher is the provider boundary; *weather.Client
// satisfies it. Nil means no API key is configured.
type ConditionsFetcher interface {
	FetchCurrent(ctx context.Context, lat, lon string) (*weather.Conditions, error)
}

type WeatherUsecase interface {
	Fetch(ctx context.Context) *weather.Conditions
}

type weatherUsecase struct {
	fetcher  ConditionsFetcher
	lat, lon string

	mu      sync.Mutex
	cached  *weather.Conditions
	expires time.Time
}

func NewWeatherUsecase(fetcher ConditionsFetcher, lat, lon string) WeatherUsecase {
	return &weatherUsecase{
		fetcher: fetcher,
		lat:     lat,
		lon:     lon,
	}
}

// Fetch returns live conditions when possible, a one-hour cached copy
// otherwise, and a sensible static fallback when the provider is
// unavailable or unconfigured.
func (u *weatherUsecase) Fetch(ctx context.Context) *weather.Conditions {
	u.mu.Lock()
	if u.cached != nil && time.Now().Before(u.expires) {
		cached := u.cached
		u.mu.Unlock()
		return cached
	}
	u.mu.Unlock()

	if u.fetcher != nil {
		conditions, err := u.fetcher.FetchCurrent(ctx, u.lat, u.lon)
		if err == nil {
			u.mu.Lock()
			u.cached = conditions
			u.expires = time.Now().Add(cacheTTL)
			u.mu.Unlock()
			return conditions
		}
		log.Printf("[WARN] weather fetch: %v", err)
	}

	return fallbackConditions()
}

// fallbackConditions mirrors a typical south-coast winter day so the
// widget renders something plausible without a provider.
func fallbackConditions() *weather.Conditions {
	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).UTC().Format("2006-01-02")
	}
	return &weather.Conditions{
		Temp:        8,
		FeelsLike:   5,
		Description: "partly cloudy",
		Icon:        "clouds",
		Humidity:    72,
		WindSpeed:   14,
		Forecast: []weather.Forecast{
			{Date: day(1), High: 9, Low: 4, Description: "cloudy", Icon: "clouds"},
			{Date: day(2), High: 10, Low: 5, Description: "light rain", Icon: "rain"},
			{Date: day(3), High: 8, Low: 3, Description: "clear", Icon: "clear"},
		},
	}
}
