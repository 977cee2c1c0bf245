package prefs

import (
	"context"
	"errors"
	"testing"

	"rcc-backend/pkg/localcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory SyncUsecase without key validation.
type fakeRemote struct {
	data    map[string]any
	readErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string]any{}}
}

func (f *fakeRemote) Configured() bool { return true }

func (f *fakeRemote) Read(_ context.Context, key string) (any, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.data[key], nil
}

func (f *fakeRemote) Write(_ context.Context, key string, value any) error {
	f.data[key] = value
	return nil
}

func newTestManager(t *testing.T, remote *fakeRemote) *Manager {
	t.Helper()
	cache, err := localcache.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return NewManager(cache, remote)
}

func TestGetUnknownKey(t *testing.T) {
	m := newTestManager(t, newFakeRemote())
	_, ok := m.Get("stock-symbols")
	assert.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	m := newTestManager(t, newFakeRemote())
	m.Put(context.Background(), "stock-symbols", []string{"QDEL", "AAPL"})

	value, ok := m.Get("stock-symbols")
	require.True(t, ok)
	// Round-trips through JSON, so the slice comes back as []any.
	assert.Equal(t, []any{"QDEL", "AAPL"}, value)
}

func TestRefreshAcceptsValidRemote(t *testing.T) {
	remote := newFakeRemote()
	remote.data["overview-order"] = []any{"weather", "accounts", "stocks", "enquiries", "bookings"}
	m := newTestManager(t, remote)

	value, ok := m.Refresh(context.Background(), "overview-order")
	require.True(t, ok)
	assert.Equal(t, remote.data["overview-order"], value)

	// The accepted value is now the local copy.
	local, ok := m.Get("overview-order")
	require.True(t, ok)
	assert.Equal(t, remote.data["overview-order"], local)
}

func TestRefreshRejectsBadShape(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		remote any
	}{
		{"overview order missing widget", "overview-order", []any{"bookings", "enquiries", "stocks", "accounts"}},
		{"overview order unknown widget", "overview-order", []any{"bookings", "enquiries", "stocks", "accounts", "invoices"}},
		{"overview order duplicate widget", "overview-order", []any{"bookings", "bookings", "stocks", "accounts", "weather"}},
		{"overview order not a list", "overview-order", "bookings,enquiries"},
		{"stock symbols empty", "stock-symbols", []any{}},
		{"stock symbols non-string", "stock-symbols", []any{"QDEL", 42.0}},
		{"balances not an object", "credit-card-balances", []any{1.0, 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote()
			remote.data[tt.key] = tt.remote
			m := newTestManager(t, remote)

			// Seed a good local value; a bad remote one must not clobber it.
			seed := map[string]any{
				"overview-order":       []any{"bookings", "enquiries", "stocks", "accounts", "weather"},
				"stock-symbols":        []any{"QDEL"},
				"credit-card-balances": map[string]any{"fluid": 100.0},
			}[tt.key]
			m.storeLocal(tt.key, seed)

			_, ok := m.Refresh(context.Background(), tt.key)
			assert.False(t, ok)

			local, found := m.Get(tt.key)
			require.True(t, found)
			assert.Equal(t, seed, local)
		})
	}
}

func TestRefreshRemoteUnavailable(t *testing.T) {
	remote := newFakeRemote()
	remote.readErr = errors.New("store offline")
	m := newTestManager(t, remote)
	m.storeLocal("stock-symbols", []any{"QDEL"})

	_, ok := m.Refresh(context.Background(), "stock-symbols")
	assert.False(t, ok)

	local, found := m.Get("stock-symbols")
	require.True(t, found)
	assert.Equal(t, []any{"QDEL"}, local)
}

func TestUncheckedKeyRefreshes(t *testing.T) {
	remote := newFakeRemote()
	remote.data["pixieset-invoices"] = map[string]any{"total": 3.0}
	m := newTestManager(t, remote)

	value, ok := m.Refresh(context.Background(), "pixieset-invoices")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"total": 3.0}, value)
}
