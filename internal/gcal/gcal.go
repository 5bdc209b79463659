// Package gcal mirrors appointments into a Google Calendar.
package gcal

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"salon-booking-api/internal/model"
)

const dateTimeLayout = "2006-01-02T15:04:05"

type Client struct {
	svc        *calendar.Service
	calendarID string
}

func New(ctx context.Context, calendarID string, opts ...option.ClientOption) (*Client, error) {
	const op = "gcal.New"

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// InsertEvent creates ev in the configured calendar and returns its id.
// Start and End are sent as wall-clock times in ev.TimeZone.
func (c *Client) InsertEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	const op = "gcal.InsertEvent"

	created, err := c.svc.Events.Insert(c.calendarID, &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(dateTimeLayout),
			TimeZone: ev.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(dateTimeLayout),
			TimeZone: ev.TimeZone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return created.Id, nil
}
