package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// namespace prefixes every remote key so the dashboard's blobs can
// share a store with other tools.
const namespace = "rcc:"

// AllowedKeys is the fixed set of preference keys the sync layer will
// touch. Anything else is rejected at the boundary, for reads and
// writes alike.
var AllowedKeys = []string{
	"overview-order",
	"stock-symbols",
	"credit-card-balances",
	"credit-card-limits",
	"pixieset-invoices",
}

var (
	ErrInvalidKey  = errors.New("syncstore: key not in allow-list")
	ErrWriteFailed = errors.New("syncstore: store did not acknowledge write")
)

// Store is the remote KV boundary. *kv.Client satisfies it; tests use
// in-memory spies.
type Store interface {
	Configured() bool
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) (ok bool, err error)
}

type SyncUsecase interface {
	Read(ctx context.Context, key string) (any, error)
	Write(ctx context.Context, key string, value any) error
	Configured() bool
}

type syncUsecase struct {
	store Store
}

func NewSyncUsecase(store Store) SyncUsecase {
	return &syncUsecase{store: store}
}

func KeyAllowed(key string) bool {
	for _, k := range AllowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (u *syncUsecase) Configured() bool {
	return u.store.Configured()
}

// Read returns the stored value for key: JSON-parsed when possible, the
// raw string otherwise, nil when absent.
func (u *syncUsecase) Read(ctx context.Context, key string) (any, error) {
	if !KeyAllowed(key) {
		return nil, ErrInvalidKey
	}

	raw, found, err := u.store.Get(ctx, namespace+key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw, nil
	}
	return parsed, nil
}

// Write stores value under key. Strings pass through untouched; every
// other value is JSON-stringified. Last write wins; there is no
// optimistic concurrency control.
func (u *syncUsecase) Write(ctx context.Context, key string, value any) error {
	if !KeyAllowed(key) {
		return ErrInvalidKey
	}

	serialised, ok := value.(string)
	if !ok {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("syncstore: serialise %s: %w", key, err)
		}
		serialised = string(data)
	}

	acked, err := u.store.Set(ctx, namespace+key, serialised)
	if err != nil {
		return err
	}
	if !acked {
		return ErrWriteFailed
	}
	return nil
}
