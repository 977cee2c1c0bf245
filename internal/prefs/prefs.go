// Package prefs layers a device-local cache over the remote sync
// store. Local reads are synchronous and always answer; the remote
// store is a best-effort convergence target, never the sole source of
// truth. A remote value only overwrites local state when it passes the
// owning feature's shape check.
package prefs

import (
	"context"
	"encoding/json"
	"log"

	syncusecase "rcc-backend/internal/syncstore/usecase"
	"rcc-backend/pkg/localcache"
)

// ShapeCheck validates a remote value before it may overwrite local
// state. Each feature registers its own.
type ShapeCheck func(value any) bool

// OverviewWidgetIDs is the complete widget set of the overview screen.
// A synced order is only trusted when it contains exactly these.
var OverviewWidgetIDs = []string{"bookings", "enquiries", "stocks", "accounts", "weather"}

type Manager struct {
	cache  *localcache.Cache
	remote syncusecase.SyncUsecase
	checks map[string]ShapeCheck
}

func NewManager(cache *localcache.Cache, remote syncusecase.SyncUsecase) *Manager {
	return &Manager{
		cache:  cache,
		remote: remote,
		checks: map[string]ShapeCheck{
			"overview-order":       OverviewOrderCheck,
			"stock-symbols":        StringListCheck,
			"credit-card-balances": ObjectCheck,
			"credit-card-limits":   ObjectCheck,
		},
	}
}

// Get reads the device-local copy of key. Returns (nil, false) when the
// key has never been stored on this device.
func (m *Manager) Get(key string) (any, bool) {
	data, found, err := m.cache.Get("prefs:" + key)
	if err != nil {
		log.Printf("[WARN] prefs: local read %s: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return value, true
}

// Refresh pulls the remote value for key and, when it passes the shape
// check, overwrites the local copy. On any failure the local copy stays
// authoritative and Refresh reports false.
func (m *Manager) Refresh(ctx context.Context, key string) (any, bool) {
	value, err := m.remote.Read(ctx, key)
	if err != nil || value == nil {
		return nil, false
	}

	if check, ok := m.checks[key]; ok && !check(value) {
		log.Printf("[WARN] prefs: remote value for %s failed shape check, keeping local", key)
		return nil, false
	}

	m.storeLocal(key, value)
	return value, true
}

// Put stores value locally right away and pushes it to the remote store
// best-effort. A remote failure is logged and dropped; there is no
// retry queue, so a write made while offline is lost remotely but
// retained on this device.
func (m *Manager) Put(ctx context.Context, key string, value any) {
	m.storeLocal(key, value)

	go func() {
		if err := m.remote.Write(context.WithoutCancel(ctx), key, value); err != nil {
			log.Printf("[WARN] prefs: remote write %s: %v", key, err)
		}
	}()
}

func (m *Manager) storeLocal(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[WARN] prefs: serialise %s: %v", key, err)
		return
	}
	if err := m.cache.Set("prefs:"+key, data); err != nil {
		log.Printf("[WARN] prefs: local write %s: %v", key, err)
	}
}

// OverviewOrderCheck accepts an array holding exactly the known widget
// ids, in any order.
func OverviewOrderCheck(value any) bool {
	list, ok := value.([]any)
	if !ok || len(list) != len(OverviewWidgetIDs) {
		return false
	}

	remaining := make(map[string]struct{}, len(OverviewWidgetIDs))
	for _, id := range OverviewWidgetIDs {
		remaining[id] = struct{}{}
	}
	for _, item := range list {
		id, ok := item.(string)
		if !ok {
			return false
		}
		if _, ok := remaining[id]; !ok {
			return false
		}
		delete(remaining, id)
	}
	return len(remaining) == 0
}

// StringListCheck accepts a non-empty array of strings.
func StringListCheck(value any) bool {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

// ObjectCheck accepts any JSON object.
func ObjectCheck(value any) bool {
	_, ok := value.(map[string]any)
	return ok
}
