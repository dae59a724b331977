package week

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/store"
	"tableflip.dev/weekplan/pkg/task"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func TestWeekAgendaAndLayout(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := app.New(p, nil)
	ctx := context.Background()
	wed := task.Date{Year: 2026, Month: time.October, Day: 14}
	if _, err := svc.CreateTask(ctx, task.Draft{Name: "Standup", Date: wed, Start: "09:00", End: "09:30"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateTask(ctx, task.Draft{Name: "Review", Date: wed, Start: "09:00", End: "10:00"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var out bytes.Buffer
	now := func() time.Time { return time.Date(2026, time.October, 14, 8, 0, 0, 0, time.Local) }
	w := Week{On: wed, Service: svc, Out: &out, Now: now}
	if err := w.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Mon 12 Oct", "Wed 14 Oct (today)", "09:00-09:30 Standup", "09:00-10:00 Review"} {
		if !strings.Contains(got, want) {
			t.Fatalf("agenda missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	w.Layout = true
	if err := w.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "1/2") || !strings.Contains(got, "2/2") {
		t.Fatalf("layout missing columns:\n%s", got)
	}
}

func TestWeekNeedsService(t *testing.T) {
	if err := (&Week{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
