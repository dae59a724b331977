// Package gcal publishes laid out weeks to a Google Calendar. Each
// occurrence becomes one event, found again on the next publish through a
// private extended property holding its occurrence key.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/store"
)

const (
	keyProperty  = "weekplan_key"
	taskProperty = "weekplan_task"
)

// Events is the slice of the Calendar API the publisher needs.
type Events interface {
	Find(ctx context.Context, key string) (*calendar.Event, error)
	Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)
	Patch(ctx context.Context, id string, ev *calendar.Event) (*calendar.Event, error)
}

// Publisher pushes occurrences into one calendar.
type Publisher struct {
	Events   Events
	Location *time.Location
}

// Result counts what a publish did.
type Result struct {
	Created   int
	Updated   int
	Unchanged int
}

// Open authorizes with the configured credentials and token and resolves
// the calendar by name.
func Open(ctx context.Context, s store.CalendarSettings) (*Publisher, error) {
	cfg, err := Config(s.Credentials)
	if err != nil {
		return nil, err
	}
	client, err := Client(ctx, cfg, s.Token)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to create calendar service: %w", err)
	}

	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to retrieve calendar list: %w", err)
	}
	var id string
	for _, item := range list.Items {
		if item.Summary == s.Name {
			id = item.Id
			break
		}
	}
	if id == "" {
		return nil, fmt.Errorf("gcal: calendar %q not found", s.Name)
	}
	return &Publisher{Events: &calendarEvents{srv: srv, calendarID: id}, Location: time.Local}, nil
}

// Publish creates or updates an event for every occurrence of w.
func (p *Publisher) Publish(ctx context.Context, w grid.Week) (Result, error) {
	var res Result
	for _, d := range w.Days {
		for _, e := range d.Entries {
			want := ToEvent(e, p.loc())
			have, err := p.Events.Find(ctx, e.Key())
			if err != nil {
				return res, fmt.Errorf("gcal: find %s: %w", e.Key(), err)
			}
			switch {
			case have == nil:
				if _, err := p.Events.Insert(ctx, want); err != nil {
					return res, fmt.Errorf("gcal: insert %s: %w", e.Key(), err)
				}
				res.Created++
			case differs(have, want):
				if _, err := p.Events.Patch(ctx, have.Id, want); err != nil {
					return res, fmt.Errorf("gcal: patch %s: %w", e.Key(), err)
				}
				res.Updated++
			default:
				res.Unchanged++
			}
		}
	}
	return res, nil
}

func (p *Publisher) loc() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// ToEvent converts a laid out occurrence into a calendar event. Completed
// occurrences are marked in the summary.
func ToEvent(e grid.Entry, loc *time.Location) *calendar.Event {
	day := e.Date.In(loc)
	start := day.Add(time.Duration(e.Start) * time.Minute)
	end := day.Add(time.Duration(e.End) * time.Minute)

	summary := e.Task.Name
	if e.Completed {
		summary = "✓ " + summary
	}
	return &calendar.Event{
		Summary:     summary,
		Description: e.Task.Description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				keyProperty:  e.Key(),
				taskProperty: e.Task.ID,
			},
		},
	}
}

func differs(have, want *calendar.Event) bool {
	return have.Summary != want.Summary ||
		have.Description != want.Description ||
		!sameTime(have.Start, want.Start) ||
		!sameTime(have.End, want.End)
}

func sameTime(a, b *calendar.EventDateTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, errA := time.Parse(time.RFC3339, a.DateTime)
	tb, errB := time.Parse(time.RFC3339, b.DateTime)
	if errA != nil || errB != nil {
		return a.DateTime == b.DateTime
	}
	return ta.Equal(tb)
}

type calendarEvents struct {
	srv        *calendar.Service
	calendarID string
}

func (c *calendarEvents) Find(ctx context.Context, key string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", keyProperty, key)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func (c *calendarEvents) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Insert(c.calendarID, ev).Context(ctx).Do()
}

func (c *calendarEvents) Patch(ctx context.Context, id string, ev *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, id, ev).Context(ctx).Do()
}
