package usecase

import (
	"context"
	"errors"
	"testing"

	"rcc-backend/pkg/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConditions struct {
	calls      int
	conditions *weather.Conditions
	err        error
}

func (f *fakeConditions) FetchCurrent(context.Context, string, string) (*weather.Conditions, error) {
	f.calls++
	return f.conditions, f.err
}

func TestFetchLive(t *testing.T) {
	fetcher := &fakeConditions{conditions: &weather.Conditions{Temp: 17, Description: "light rain", Icon: "rain"}}
	uc := NewWeatherUsecase(fetcher, "50.9097", "-1.4044")

	got := uc.Fetch(context.Background())
	assert.Equal(t, 17, got.Temp)
	assert.Equal(t, "rain", got.Icon)
}

func TestFetchServedFromCache(t *testing.T) {
	fetcher := &fakeConditions{conditions: &weather.Conditions{Temp: 17}}
	uc := NewWeatherUsecase(fetcher, "50.9097", "-1.4044")
	ctx := context.Background()

	uc.Fetch(ctx)
	uc.Fetch(ctx)
	uc.Fetch(ctx)

	assert.Equal(t, 1, fetcher.calls)
}

func TestFetchFallsBack(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		uc := NewWeatherUsecase(&fakeConditions{err: errors.New("401")}, "50.9097", "-1.4044")
		got := uc.Fetch(context.Background())
		require.NotNil(t, got)
		assert.NotEmpty(t, got.Description)
		assert.Len(t, got.Forecast, 3)
	})

	t.Run("no provider", func(t *testing.T) {
		uc := NewWeatherUsecase(nil, "50.9097", "-1.4044")
		got := uc.Fetch(context.Background())
		require.NotNil(t, got)
		assert.NotEmpty(t, got.Description)
	})
}
