package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"rcc-backend/internal/enquiry/usecase"
)

// Poller drives the notifier on a fixed interval against the enquiry
// usecase. The read is idempotent, so this poller needs no coordination
// with the dashboard's own display polls.
type Poller struct {
	enquiryUsecase usecase.EnquiryUsecase
	notifier       *Notifier
	interval       time.Duration
}

func NewPoller(enquiryUsecase usecase.EnquiryUsecase, notifier *Notifier, interval time.Duration) *Poller {
	return &Poller{
		enquiryUsecase: enquiryUsecase,
		notifier:       notifier,
		interval:       interval,
	}
}

// Start blocks until ctx is cancelled. Run it in its own goroutine.
func (p *Poller) Start(ctx context.Context) {
	log.Printf("[DEBUG] notify: polling every %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.notifier.Observe(p.enquiryUsecase.Fetch(ctx))

	for {
		select {
		case <-ctx.Done():
			log.Printf("[DEBUG] notify: poller stopped")
			return
		case <-ticker.C:
			p.notifier.Observe(p.enquiryUsecase.Fetch(ctx))
		}
	}
}

// LogAlerter is the default Alerter: a terminal bell plus a log line.
type LogAlerter struct{}

func (LogAlerter) Chime() {
	fmt.Fprint(os.Stdout, "\a")
}

func (LogAlerter) Notify(title, body, link string) {
	log.Printf("[NOTIFY] %s: %s (%s)", title, body, link)
}
