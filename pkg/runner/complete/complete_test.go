package complete

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

func TestCompleteAndUndo(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := app.New(p, nil)
	ctx := context.Background()
	mon := task.Date{Year: 2026, Month: time.October, Day: 12}
	created, err := svc.CreateTask(ctx, task.Draft{Name: "Gym", Date: mon, Start: "07:00", End: "08:00", Recurring: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var out bytes.Buffer
	next := mon.AddDays(7)
	c := Complete{ID: created.ID, On: next, Service: svc, Out: &out}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(out.String(), "completed Gym on 2026-10-19") {
		t.Fatalf("output = %q", out.String())
	}
	if !p.Completions(ctx).Has(created.ID, next) {
		t.Fatalf("expected completion to be stored")
	}

	c.Undo = true
	if err := c.Do(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if p.Completions(ctx).Has(created.ID, next) {
		t.Fatalf("expected completion to be cleared")
	}

	c = Complete{ID: created.ID, On: mon.AddDays(1), Service: svc, Out: &out}
	if err := c.Do(ctx); err == nil {
		t.Fatalf("expected error for a day without an occurrence")
	}
}
