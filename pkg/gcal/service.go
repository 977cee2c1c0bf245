// Package gcal wraps the Google Calendar API behind service-account
// credentials for the bookings feed.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Service struct {
	cal *calendar.Service
}

// NewService builds a read-only Calendar client from a service-account
// JSON key blob.
func NewService(ctx context.Context, serviceAccountKey string) (*Service, error) {
	cal, err := calendar.NewService(ctx,
		option.WithCredentialsJSON([]byte(serviceAccountKey)),
		option.WithScopes(calendar.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return &Service{cal: cal}, nil
}

// ListUpcoming returns up to maxResults single events between from and
// to, ordered by start time.
func (s *Service) ListUpcoming(ctx context.Context, calendarID string, from, to time.Time, maxResults int) ([]*calendar.Event, error) {
	resp, err := s.cal.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(int64(maxResults)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events for %s: %v", calendarID, err)
	}
	return resp.Items, nil
}
