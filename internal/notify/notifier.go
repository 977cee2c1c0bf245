// Package notify watches the enquiry pipeline for new unread mail and
// raises exactly one alert per message. The seen-id set persists across
// restarts so a relaunch does not re-notify old mail.
package notify

import (
	"encoding/json"
	"log"
	"sort"

	"rcc-backend/internal/enquiry/domain"
	"rcc-backend/pkg/localcache"
)

const seenKey = "notify:seen-ids"

// Alerter delivers the audible chime and the per-message notification.
type Alerter interface {
	Chime()
	Notify(title, body, link string)
}

// Notifier tracks which unread enquiries have already been announced.
// The first observation after loading the seen set primes it silently:
// pre-existing unread mail never triggers a notification storm.
type Notifier struct {
	cache   *localcache.Cache
	alerter Alerter
	seen    map[string]struct{}
	steady  bool
}

func NewNotifier(cache *localcache.Cache, alerter Alerter) *Notifier {
	n := &Notifier{
		cache:   cache,
		alerter: alerter,
		seen:    make(map[string]struct{}),
	}
	n.loadSeen()
	return n
}

// Observe processes one successful pipeline result and fires alerts for
// unread messages not yet in the seen set. The seen set is persisted
// after every change.
func (n *Notifier) Observe(result *domain.Result) {
	if result == nil || !result.Live {
		return
	}

	changed := false
	for _, msg := range result.Emails {
		if !msg.IsUnread {
			continue
		}
		if _, ok := n.seen[msg.ID]; ok {
			continue
		}
		n.seen[msg.ID] = struct{}{}
		changed = true

		if n.steady {
			n.alerter.Chime()
			n.alerter.Notify("New enquiry from "+msg.From, msg.Subject, msg.GmailURL)
		}
	}

	if changed {
		n.persistSeen()
	}
	n.steady = true
}

func (n *Notifier) loadSeen() {
	data, found, err := n.cache.Get(seenKey)
	if err != nil {
		log.Printf("[WARN] notify: load seen set: %v", err)
		return
	}
	if !found {
		return
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("[WARN] notify: corrupt seen set, starting fresh: %v", err)
		return
	}
	for _, id := range ids {
		n.seen[id] = struct{}{}
	}
}

func (n *Notifier) persistSeen() {
	ids := make([]string, 0, len(n.seen))
	for id := range n.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		log.Printf("[WARN] notify: serialise seen set: %v", err)
		return
	}
	if err := n.cache.Set(seenKey, data); err != nil {
		log.Printf("[WARN] notify: persist seen set: %v", err)
	}
}
