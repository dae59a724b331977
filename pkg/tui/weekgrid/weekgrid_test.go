package weekgrid

import (
	"strings"
	"testing"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func testWeek() grid.Week {
	d := func(n int) task.Date { return task.Date{Year: 2026, Month: time.October, Day: n} }
	tasks := []*task.Task{
		{ID: "review", Name: "Review", Anchor: d(14), Start: "10:00", End: "11:00"},
	}
	return grid.BuildWeek(tasks, d(12), nil, grid.DefaultLayoutOptions())
}

// 97 columns leave 12 cells per day; 20 rows show 19 slots from 07:00.
func testGrid() *Grid {
	return New(97, 20)
}

func TestGridGeometry(t *testing.T) {
	g := testGrid()
	if g.ColumnWidth != 12 || g.DayWidth() != 13 {
		t.Fatalf("column width = %d, day width = %d", g.ColumnWidth, g.DayWidth())
	}
	if g.Rows != 19 || g.TopSlot != 28 {
		t.Fatalf("rows = %d, top slot = %d", g.Rows, g.TopSlot)
	}

	c, ok := g.CellAt(GutterWidth+2*13+3, 13)
	if !ok {
		t.Fatalf("expected a cell")
	}
	if c.Day != 2 || c.Minutes() != 10*60 {
		t.Fatalf("cell = %+v", c)
	}
	if _, ok := g.CellAt(GutterWidth+12, 5); ok {
		t.Fatalf("column separator should not map to a cell")
	}
	if _, ok := g.CellAt(2, 5); ok {
		t.Fatalf("gutter should not map to a cell")
	}
	if _, ok := g.CellAt(GutterWidth, 0); ok {
		t.Fatalf("header should not map to a cell")
	}

	p := g.Point(GutterWidth+2*13, 13)
	if p.X != 26 || p.Y != 40 {
		t.Fatalf("point = %+v", p)
	}
}

func TestGridScrollStaysInsideDay(t *testing.T) {
	g := testGrid()
	g.Scroll(-100)
	if g.TopSlot != 0 {
		t.Fatalf("top slot = %d", g.TopSlot)
	}
	g.Scroll(1000)
	if g.TopSlot != grid.SlotsPerDay-g.Rows {
		t.Fatalf("top slot = %d", g.TopSlot)
	}
}

func TestEntryAt(t *testing.T) {
	g := testGrid()
	w := testWeek()

	e, day, ok := g.EntryAt(w, GutterWidth+2*13+3, 13)
	if !ok || e.Task.ID != "review" || day != 2 {
		t.Fatalf("entry = %+v day %d ok %v", e, day, ok)
	}
	if _, _, ok := g.EntryAt(w, GutterWidth+2*13+3, 17); ok {
		t.Fatalf("11:00 is past the end of the entry")
	}
	if _, _, ok := g.EntryAt(w, GutterWidth+1*13+3, 13); ok {
		t.Fatalf("tuesday has no entries")
	}
}

func TestRenderShowsEntriesAndNow(t *testing.T) {
	g := testGrid()
	now := time.Date(2026, time.October, 14, 9, 7, 0, 0, time.Local)
	out := stripANSI(g.Render(testWeek(), State{Now: now}))

	for _, want := range []string{"Mon 12", "Wed 14", "07:00", "09:07", "Review", "10:00-11:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 20 {
		t.Fatalf("rendered %d lines", len(lines))
	}
}

func TestRenderPreviewHidesOriginal(t *testing.T) {
	g := testGrid()
	pv := &grid.Preview{ID: "review", Kind: grid.KindMove, From: 2, Day: 4, Top: 44, Height: 4}
	out := stripANSI(g.Render(testWeek(), State{Editing: "review", Preview: pv}))

	if strings.Contains(out, "10:00-11:00") {
		t.Fatalf("original should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "11:00-12:00") {
		t.Fatalf("expected preview times:\n%s", out)
	}
}

func TestRenderPreviewHidesOnlyDraggedOccurrence(t *testing.T) {
	d := func(n int) task.Date { return task.Date{Year: 2026, Month: time.October, Day: n} }
	tasks := []*task.Task{
		{ID: "gym", Name: "Gym", Anchor: d(12), Start: "08:00", End: "09:00"},
		{ID: "gym", Name: "Gym", Anchor: d(16), Start: "10:00", End: "11:00"},
	}
	w := grid.BuildWeek(tasks, d(12), nil, grid.DefaultLayoutOptions())
	g := testGrid()
	pv := &grid.Preview{ID: "gym", Kind: grid.KindMove, From: 4, Day: 4, Top: 36, Height: 4}
	out := stripANSI(g.Render(w, State{Editing: "gym", Preview: pv}))

	if !strings.Contains(out, "08:00-09:00") {
		t.Fatalf("monday occurrence should stay visible:\n%s", out)
	}
	if strings.Contains(out, "10:00-11:00") {
		t.Fatalf("dragged occurrence should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "09:00-10:00") {
		t.Fatalf("expected preview times:\n%s", out)
	}
}

func TestRenderSelection(t *testing.T) {
	g := testGrid()
	out := stripANSI(g.Render(testWeek(), State{Selection: &Selection{Day: 0, From: 8 * 60, To: 9*60 + 15}}))
	if !strings.Contains(out, "08:00-09:15") {
		t.Fatalf("expected selection label:\n%s", out)
	}
}
