package mcp

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func newTestService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := NewService(app.New(p, nil))
	svc.Now = func() time.Time { return time.Date(2026, time.October, 14, 8, 0, 0, 0, time.Local) }
	return svc
}

func TestCreateTaskWithDurationAndListWeek(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskOptions{Name: "Review", Start: "09:30", Duration: "1h30m"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Date != "2026-10-14" || created.End != "11:00" {
		t.Fatalf("created = %+v", created)
	}
	if _, err := svc.CreateTask(ctx, CreateTaskOptions{Name: "Overlap", Date: "2026-10-14", Start: "10:00", End: "10:30"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	week, err := svc.ListWeek(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if week.Start != "2026-10-12" || week.End != "2026-10-18" || week.Count != 2 || len(week.Days) != 7 {
		t.Fatalf("week = %+v", week)
	}
	wed := week.Days[2]
	if wed.Weekday != "Wednesday" || len(wed.Entries) != 2 {
		t.Fatalf("wednesday = %+v", wed)
	}
	for _, e := range wed.Entries {
		if e.TotalColumns != 2 {
			t.Fatalf("expected two columns, got %+v", e)
		}
	}
	if wed.Entries[0].Key != created.ID+"_2026-10-14" {
		t.Fatalf("key = %q", wed.Entries[0].Key)
	}
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []CreateTaskOptions{
		{Name: "Bad date", Date: "14/10/2026", Start: "09:00", End: "10:00"},
		{Name: "Bad span", Start: "09:00", Duration: "ten"},
		{Name: "Past midnight", Start: "23:30", Duration: "1h"},
		{Name: "Inverted", Start: "10:00", End: "09:00"},
		{Name: "", Start: "09:00", End: "10:00"},
	}
	for _, opts := range cases {
		if _, err := svc.CreateTask(ctx, opts); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestUpdateCompleteAndSkip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskOptions{Name: "Gym", Date: "2026-10-12", Start: "07:00", End: "08:00", Recurring: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := svc.UpdateTask(ctx, UpdateTaskOptions{ID: created.ID, Start: "18:00", End: "19:00"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.Date != "2026-10-12" || moved.Start != "18:00" || moved.End != "19:00" {
		t.Fatalf("moved = %+v", moved)
	}

	key, err := svc.CompleteOccurrence(ctx, created.ID, "2026-10-19", true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if key != created.ID+"_2026-10-19" {
		t.Fatalf("key = %q", key)
	}
	if _, err := svc.CompleteOccurrence(ctx, created.ID, "2026-10-20", true); err == nil {
		t.Fatalf("expected error completing a day without an occurrence")
	}

	skipped, err := svc.SkipOccurrence(ctx, created.ID, "2026-10-26")
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if skipped == nil || len(skipped.Exceptions) != 1 || skipped.Exceptions[0] != "2026-10-26" {
		t.Fatalf("skipped = %+v", skipped)
	}

	week, err := svc.ListWeek(ctx, "2026-10-21")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(week.Days[0].Entries) != 1 || !week.Days[0].Entries[0].Completed {
		t.Fatalf("expected completed monday occurrence: %+v", week.Days[0])
	}
}

func TestSkipOneOffDeletes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskOptions{Name: "Call", Start: "12:00", End: "12:30"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	skipped, err := svc.SkipOccurrence(ctx, created.ID, "2026-10-14")
	if err != nil || skipped != nil {
		t.Fatalf("skip = %+v, %v", skipped, err)
	}
	if _, err := svc.TaskByID(ctx, created.ID); err == nil {
		t.Fatalf("expected task to be gone")
	}
}

func TestNilService(t *testing.T) {
	svc := &Service{}
	if _, err := svc.ListWeek(context.Background(), ""); err == nil {
		t.Fatalf("expected error")
	}
}
