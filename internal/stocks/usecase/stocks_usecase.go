package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"rcc-backend/internal/prefs"
	"rcc-backend/pkg/yahoo"
)

const (
	quoteTTL    = 5 * time.Minute
	intradayTTL = time.Minute
)

// QuoteFetcher is the market-data boundary; *yahoo.Client satisfies it.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*yahoo.Quote, error)
	FetchIntraday(ctx context.Context, symbol string) ([]yahoo.PricePoint, error)
}

// Snapshot is the GET /api/stocks payload.
type Snapshot struct {
	Stocks    []yahoo.Quote `json:"stocks"`
	Timestamp string        `json:"timestamp"`
}

type StocksUsecase interface {
	Fetch(ctx context.Context, symbols []string, includeIntraday bool) *Snapshot
	DefaultSymbols(ctx context.Context) []string
}

type cacheEntry struct {
	quote   *yahoo.Quote
	expires time.Time
}

type stocksUsecase struct {
	fetcher QuoteFetcher
	prefs   *prefs.Manager

	mu            sync.Mutex
	quoteCache    map[string]cacheEntry
	intradayCache map[string]cacheEntry
}

func NewStocksUsecase(fetcher QuoteFetcher, prefsManager *prefs.Manager) StocksUsecase {
	return &stocksUsecase{
		fetcher:       fetcher,
		prefs:         prefsManager,
		quoteCache:    make(map[string]cacheEntry),
		intradayCache: make(map[string]cacheEntry),
	}
}

// DefaultSymbols is the watchlist used when the request names no
// symbols: the synced stock-symbols preference when it looks sane,
// QDEL otherwise.
func (u *stocksUsecase) DefaultSymbols(ctx context.Context) []string {
	value, ok := u.prefs.Refresh(ctx, "stock-symbols")
	if !ok {
		value, ok = u.prefs.Get("stock-symbols")
	}
	if ok {
		if list, ok := value.([]any); ok && len(list) > 0 {
			symbols := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					symbols = append(symbols, s)
				}
			}
			if len(symbols) > 0 {
				return symbols
			}
		}
	}
	return []string{"QDEL"}
}

// Fetch resolves each requested symbol, serving recent results from the
// TTL cache to stay friendly with the unauthenticated chart API.
// Symbols that fail to resolve are dropped from the response.
func (u *stocksUsecase) Fetch(ctx context.Context, symbols []string, includeIntraday bool) *Snapshot {
	quotes := make([]*yahoo.Quote, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			quotes[i] = u.fetchOne(ctx, symbol, includeIntraday)
		}(i, symbol)
	}
	wg.Wait()

	stocks := make([]yahoo.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q != nil {
			stocks = append(stocks, *q)
		}
	}

	return &Snapshot{
		Stocks:    stocks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (u *stocksUsecase) fetchOne(ctx context.Context, symbol string, includeIntraday bool) *yahoo.Quote {
	quote := u.cachedQuote(ctx, symbol)
	if quote == nil {
		return nil
	}

	if includeIntraday {
		out := *quote
		out.Intraday = u.cachedIntraday(ctx, symbol)
		return &out
	}
	return quote
}

func (u *stocksUsecase) cachedQuote(ctx context.Context, symbol string) *yahoo.Quote {
	u.mu.Lock()
	entry, ok := u.quoteCache[symbol]
	u.mu.Unlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.quote
	}

	quote, err := u.fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] failed to fetch %s: %v", symbol, err)
		return nil
	}

	u.mu.Lock()
	u.quoteCache[symbol] = cacheEntry{quote: quote, expires: time.Now().Add(quoteTTL)}
	u.mu.Unlock()
	return quote
}

func (u *stocksUsecase) cachedIntraday(ctx context.Context, symbol string) []yahoo.PricePoint {
	u.mu.Lock()
	entry, ok := u.intradayCache[symbol]
	u.mu.Unlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.quote.Intraday
	}

	series, err := u.fetcher.FetchIntraday(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] failed to fetch %s intraday: %v", symbol, err)
		return nil
	}

	u.mu.Lock()
	u.intradayCache[symbol] = cacheEntry{
		quote:   &yahoo.Quote{Intraday: series},
		expires: time.Now().Add(intradayTTL),
	}
	u.mu.Unlock()
	return series
}
