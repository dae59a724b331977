package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

func testWeek() grid.Week {
	d := func(n int) task.Date { return task.Date{Year: 2026, Month: time.October, Day: n} }
	tasks := []*task.Task{
		{ID: "a", Name: "Review", Anchor: d(14), Start: "09:00", End: "10:00", HighPriority: true},
		{ID: "b", Name: "Pairing", Anchor: d(14), Start: "09:30", End: "10:30"},
	}
	done := task.Completions{task.OccurrenceKey("b", d(14)): {}}
	return grid.BuildWeek(tasks, d(12), done, grid.DefaultLayoutOptions())
}

func TestWeekAgenda(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Now: func() time.Time { return time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC) }}
	pp.Week(testWeek())

	out := buf.String()
	for _, want := range []string{"Mon 12 Oct", "Wed 14 Oct (today)", "! 09:00-10:00 Review", "09:30-10:30 Pairing", " none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLayoutTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}
	pp.Layout(testWeek())

	out := buf.String()
	for _, want := range []string{"Col", "1/2", "2/2", "Review", "Pairing", "Wed 14"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
