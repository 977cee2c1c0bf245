package usecase

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"rcc-backend/internal/bookings/domain"

	"google.golang.org/api/calendar/v3"
)

// Calendar sources, checked in this order when assembling the feed.
const (
	sourcePhotography = "photography"
	sourcePrimary     = "primary"
	sourceMeetings    = "meetings"
	sourceTravel      = "travel"
	sourcePartners    = "partners"
	sourceLeisure     = "leisure"
	sourceFamily      = "family"
)

// DefaultCalendars maps each source to its Google calendar id.
var DefaultCalendars = map[string]string{
	sourcePhotography: "f4ea15fdd1ea8f5f2782618c36cd8de9422488ed6243d9707e0ff5de0ecda514@group.calendar.google.com",
	sourcePrimary:     "rstanikk@gmail.com",
	sourceMeetings:    "ca1aca631e5c1f08b853debcfdb259465485359f8a498c35d5db07506210dfb1@group.calendar.google.com",
	sourceTravel:      "64baf24171617db4cc34f2827555f3a9fb4384da727176b5e1301f50e56bcb1f@group.calendar.google.com",
	sourcePartners:    "b9234fa5d3cc4f610324b0e13ba689a10930d494a3e446bae19c7bdb2bc14106@group.calendar.google.com",
	sourceLeisure:     "7c9a97ae8f4b4e510e204589e804f9a88b864bb112dc9c7a1978cd2dd67762f4@group.calendar.google.com",
	sourceFamily:      "fa56c0ff55d718808237ed482284ec30a486501204b2fc498404a6bda1aa339a@group.calendar.google.com",
}

// sourceOrder fixes the fetch order so dedup ties resolve the same way
// on every run.
var sourceOrder = []string{
	sourcePhotography, sourcePrimary, sourceMeetings, sourceTravel,
	sourcePartners, sourceLeisure, sourceFamily,
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// EventLister is the Calendar API boundary; *gcal.Service satisfies it.
type EventLister interface {
	ListUpcoming(ctx context.Context, calendarID string, from, to time.Time, maxResults int) ([]*calendar.Event, error)
}

type BookingsUsecase interface {
	Fetch(ctx context.Context) *domain.Result
}

type bookingsUsecase struct {
	lister    EventLister
	calendars map[string]string
	location  *time.Location
}

func NewBookingsUsecase(lister EventLister, calendars map[string]string) BookingsUsecase {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		loc = time.UTC
	}
	return &bookingsUsecase{
		lister:    lister,
		calendars: calendars,
		location:  loc,
	}
}

// Fetch pulls the next three months from every configured calendar,
// skipping calendars the service account cannot read, then sorts and
// dedups the combined feed.
func (u *bookingsUsecase) Fetch(ctx context.Context) *domain.Result {
	now := time.Now()
	horizon := now.AddDate(0, 3, 0)

	var events []domain.Event
	for _, source := range sourceOrder {
		calendarID, ok := u.calendars[source]
		if !ok {
			continue
		}
		items, err := u.lister.ListUpcoming(ctx, calendarID, now, horizon, 50)
		if err != nil {
			log.Printf("[WARN] failed to fetch %s calendar: %v", source, err)
			continue
		}

		for _, item := range items {
			if event, ok := u.convertEvent(source, calendarID, item); ok {
				events = append(events, event)
			}
		}
	}

	sortEvents(events)

	return &domain.Result{
		Events: dedupEvents(events),
		Live:   true,
	}
}

func (u *bookingsUsecase) convertEvent(source, calendarID string, item *calendar.Event) (domain.Event, bool) {
	if item.Summary == "" || item.Status == "cancelled" || item.EventType == "birthday" {
		return domain.Event{}, false
	}

	isAllDay := item.Start != nil && item.Start.Date != ""
	startDate, startTime := u.splitDateTime(item.Start)
	endDate, endTime := u.splitDateTime(item.End)
	if startDate == "" {
		return domain.Event{}, false
	}

	id := item.Id
	if id == "" {
		id = source + "-" + startDate
	}

	return domain.Event{
		ID:             id,
		Title:          item.Summary,
		Client:         deriveClient(item.Summary, source),
		Date:           startDate,
		EndDate:        endDate,
		Time:           startTime,
		EndTime:        endTime,
		Location:       item.Location,
		Description:    item.Description,
		Type:           inferType(source, item.Summary),
		CalendarSource: source,
		AllDay:         isAllDay,
	}, true
}

// splitDateTime renders an event boundary as a date plus an optional
// local wall-clock time. All-day events carry a bare date.
func (u *bookingsUsecase) splitDateTime(edt *calendar.EventDateTime) (date, clock string) {
	if edt == nil {
		return "", ""
	}
	if edt.Date != "" {
		return edt.Date, ""
	}
	if edt.DateTime == "" {
		return "", ""
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return strings.SplitN(edt.DateTime, "T", 2)[0], ""
	}
	local := t.In(u.location)
	return local.Format("2006-01-02"), local.Format("15:04")
}

// inferType buckets an event. Dedicated calendars decide directly; the
// primary calendar falls back to content sniffing.
func inferType(source, summary string) domain.EventType {
	switch source {
	case sourcePhotography:
		return domain.TypePhotography
	case sourceMeetings:
		return domain.TypeMeeting
	case sourceTravel:
		return domain.TypeTravel
	case sourcePartners, sourceLeisure, sourceFamily:
		return domain.TypePersonal
	}

	lower := strings.ToLower(summary)
	if containsAny(lower, "flight", "accommodation", "stay at", "hotel") {
		return domain.TypeTravel
	}
	if containsAny(lower, "padharo", "popado", "retainer") {
		return domain.TypeRetainer
	}
	return domain.TypePersonal
}

// deriveClient picks a display name for the event's counterparty.
func deriveClient(summary, source string) string {
	switch source {
	case sourcePhotography:
		return summary
	case sourceMeetings:
		return "Meeting"
	case sourceTravel:
		return "Travel"
	}

	lower := strings.ToLower(summary)
	if containsAny(lower, "flight", "accommodation", "stay at", "hotel") {
		return "Travel"
	}
	return summary
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// sortEvents orders by date, then timed-before-untimed, then time.
func sortEvents(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Time != "" && events[j].Time != "" {
			return events[i].Time < events[j].Time
		}
		return events[i].Time != ""
	})
}

// dedupEvents drops later entries sharing a title+date key, collapsing
// the Gmail auto-created copy of a manually-entered event.
func dedupEvents(events []domain.Event) []domain.Event {
	seen := make(map[string]struct{}, len(events))
	deduped := make([]domain.Event, 0, len(events))
	for _, event := range events {
		key := nonAlnum.ReplaceAllString(strings.ToLower(event.Title), "") + "-" + event.Date
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, event)
	}
	return deduped
}
