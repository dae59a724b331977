package gcal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

type fakeEvents struct {
	byKey   map[string]*calendar.Event
	inserts int
	patches int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{byKey: map[string]*calendar.Event{}}
}

func (f *fakeEvents) Find(_ context.Context, key string) (*calendar.Event, error) {
	return f.byKey[key], nil
}

func (f *fakeEvents) Insert(_ context.Context, ev *calendar.Event) (*calendar.Event, error) {
	f.inserts++
	ev.Id = ev.ExtendedProperties.Private[keyProperty]
	f.byKey[ev.Id] = ev
	return ev, nil
}

func (f *fakeEvents) Patch(_ context.Context, id string, ev *calendar.Event) (*calendar.Event, error) {
	f.patches++
	ev.Id = id
	f.byKey[id] = ev
	return ev, nil
}

func testWeek(tasks ...*task.Task) grid.Week {
	return grid.BuildWeek(tasks, task.Date{Year: 2026, Month: time.October, Day: 12}, nil, grid.DefaultLayoutOptions())
}

func TestToEvent(t *testing.T) {
	w := testWeek(&task.Task{ID: "a", Name: "Review", Description: "notes", Anchor: task.Date{Year: 2026, Month: time.October, Day: 14}, Start: "23:00", End: "24:00"})
	e := w.Days[2].Entries[0]
	e.Completed = true

	ev := ToEvent(e, time.UTC)
	if ev.Summary != "✓ Review" || ev.Description != "notes" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Start.DateTime != "2026-10-14T23:00:00Z" || ev.End.DateTime != "2026-10-15T00:00:00Z" {
		t.Fatalf("times = %s - %s", ev.Start.DateTime, ev.End.DateTime)
	}
	if ev.ExtendedProperties.Private[keyProperty] != "a_2026-10-14" || ev.ExtendedProperties.Private[taskProperty] != "a" {
		t.Fatalf("properties = %v", ev.ExtendedProperties.Private)
	}
}

func TestPublishUpserts(t *testing.T) {
	ctx := context.Background()
	gym := &task.Task{ID: "gym", Name: "Gym", Anchor: task.Date{Year: 2026, Month: time.October, Day: 12}, Start: "07:00", End: "08:00", Recurring: true}
	events := newFakeEvents()
	p := &Publisher{Events: events, Location: time.UTC}

	res, err := p.Publish(ctx, testWeek(gym))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Created != 1 || events.inserts != 1 {
		t.Fatalf("result = %+v", res)
	}

	res, err = p.Publish(ctx, testWeek(gym))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Unchanged != 1 || events.inserts != 1 || events.patches != 0 {
		t.Fatalf("expected no changes, got %+v", res)
	}

	gym.End = "08:30"
	res, err = p.Publish(ctx, testWeek(gym))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Updated != 1 || events.patches != 1 {
		t.Fatalf("expected an update, got %+v", res)
	}
	if got := events.byKey["gym_2026-10-12"].End.DateTime; got != "2026-10-12T08:30:00Z" {
		t.Fatalf("end = %s", got)
	}
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	tok := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}
	if err := writeToken(path, tok); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readToken(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Fatalf("token = %+v", got)
	}
}

func TestClientWithoutToken(t *testing.T) {
	cfg := &oauth2.Config{}
	if _, err := Client(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.json")); err != ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestSavingSourcePersistsRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	old := &oauth2.Token{AccessToken: "old"}
	s := &savingSource{src: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "new"}), last: old, path: path}

	if _, err := s.Token(); err != nil {
		t.Fatalf("token: %v", err)
	}
	got, err := readToken(path)
	if err != nil || got.AccessToken != "new" {
		t.Fatalf("saved = %+v, %v", got, err)
	}
}
