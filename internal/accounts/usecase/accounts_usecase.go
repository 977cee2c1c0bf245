package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"rcc-backend/internal/accounts/domain"
	"rcc-backend/internal/prefs"
	"rcc-backend/pkg/starling"
	"rcc-backend/pkg/trading212"
)

// BankFetcher and BrokerFetcher are the provider boundaries; either may
// be nil when the matching credential is absent.
type BankFetcher interface {
	FetchBalance(ctx context.Context) (*starling.Balance, error)
}

type BrokerFetcher interface {
	FetchSummary(ctx context.Context) (*trading212.Summary, error)
}

type AccountsUsecase interface {
	Fetch(ctx context.Context) *domain.Snapshot
}

type accountsUsecase struct {
	bank   BankFetcher
	broker BrokerFetcher
	prefs  *prefs.Manager
}

func NewAccountsUsecase(bank BankFetcher, broker BrokerFetcher, prefsManager *prefs.Manager) AccountsUsecase {
	return &accountsUsecase{
		bank:   bank,
		broker: broker,
		prefs:  prefsManager,
	}
}

// Fetch assembles the balances snapshot: live bank and brokerage
// balances plus the manually-synced credit cards. The three sources are
// independent; any failure renders that row as not-live instead of
// failing the snapshot.
func (u *accountsUsecase) Fetch(ctx context.Context) *domain.Snapshot {
	var (
		wg      sync.WaitGroup
		bank    *starling.Balance
		broker  *trading212.Summary
		manuals map[string]any
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		bank = u.fetchBank(ctx)
	}()
	go func() {
		defer wg.Done()
		broker = u.fetchBroker(ctx)
	}()
	go func() {
		defer wg.Done()
		manuals = u.fetchManualBalances(ctx)
	}()
	wg.Wait()

	now := time.Now().UTC().Format(time.RFC3339)
	accounts := make([]domain.Account, 0, 2+len(domain.CreditCards))

	current := domain.Account{
		ID:       "starling",
		Name:     "Starling",
		Type:     "current",
		Currency: "GBP",
		AutoSync: true,
	}
	if bank != nil {
		balance, _ := bank.EffectiveBalance.Float64()
		current.Balance = &balance
		current.Currency = bank.Currency
		current.LastUpdated = &now
		current.Live = true
	}
	accounts = append(accounts, current)

	investment := domain.Account{
		ID:       "trading212",
		Name:     "Trading 212",
		Type:     "investment",
		Currency: "GBP",
		AutoSync: true,
	}
	if broker != nil {
		total, _ := broker.TotalValue.Float64()
		cash, _ := broker.Cash.Float64()
		invested, _ := broker.InvestedValue.Float64()
		pnl, _ := broker.UnrealisedPnL.Float64()
		investment.Balance = &total
		investment.Cash = &cash
		investment.InvestedValue = &invested
		investment.UnrealisedPnL = &pnl
		investment.Currency = broker.Currency
		investment.LastUpdated = &now
		investment.Live = true
	}
	accounts = append(accounts, investment)

	for _, card := range domain.CreditCards {
		accounts = append(accounts, manualAccount(card, manuals))
	}

	return &domain.Snapshot{
		Accounts:  accounts,
		Timestamp: now,
	}
}

func (u *accountsUsecase) fetchBank(ctx context.Context) *starling.Balance {
	if u.bank == nil {
		return nil
	}
	balance, err := u.bank.FetchBalance(ctx)
	if err != nil {
		log.Printf("[WARN] starling fetch: %v", err)
		return nil
	}
	return balance
}

func (u *accountsUsecase) fetchBroker(ctx context.Context) *trading212.Summary {
	if u.broker == nil {
		return nil
	}
	summary, err := u.broker.FetchSummary(ctx)
	if err != nil {
		log.Printf("[WARN] trading212 fetch: %v", err)
		return nil
	}
	return summary
}

// fetchManualBalances reads the credit-card-balances blob remote-first
// so another device's bookmarklet update shows up immediately, falling
// back to this device's last known copy when the store is unreachable.
func (u *accountsUsecase) fetchManualBalances(ctx context.Context) map[string]any {
	value, ok := u.prefs.Refresh(ctx, "credit-card-balances")
	if !ok {
		value, ok = u.prefs.Get("credit-card-balances")
		if !ok {
			return map[string]any{}
		}
	}
	blob, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return blob
}

// manualAccount renders one card from the flattened blob shape
// {"<id>": balance, "<id>-updated": timestamp}. Unknown keys in the
// blob are tolerated and ignored.
func manualAccount(card domain.CreditCard, blob map[string]any) domain.Account {
	account := domain.Account{
		ID:       card.ID,
		Name:     card.Name,
		Type:     "credit",
		Currency: "GBP",
	}

	if raw, ok := blob[card.ID]; ok {
		if balance, ok := raw.(float64); ok {
			account.Balance = &balance
			if updated, ok := blob[card.ID+"-updated"].(string); ok {
				account.LastUpdated = &updated
			}
		}
	}

	return account
}
