package grid

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/weekplan/pkg/task"
)

type countingListeners struct {
	attached int
	released int
}

func (c *countingListeners) Attach() func() {
	c.attached++
	return func() { c.released++ }
}

func newTestController() (*Controller, *countingListeners) {
	l := &countingListeners{}
	return NewController(day(2026, time.October, 12), DefaultScale(), 10, l), l
}

func cell(d int, clock string) Cell {
	m, _ := MinutesFromMidnight(clock)
	return CellAt(d, m)
}

func TestSelectionCreatesRequest(t *testing.T) {
	c, _ := newTestController()
	if err := c.BeginSelection(cell(2, "09:00")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := c.ExtendSelection(cell(2, "10:15")); err != nil {
		t.Fatalf("extend: %v", err)
	}
	d, from, to, ok := c.Highlight()
	if !ok || d != 2 || from != 540 || to != 630 {
		t.Fatalf("unexpected highlight %d %d %d %v", d, from, to, ok)
	}

	req, err := c.EndSelection()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	want := CreateRequest{Date: day(2026, time.October, 14), Start: "09:00", End: "10:30"}
	if req != want {
		t.Fatalf("expected %+v, got %+v", want, req)
	}
	if c.Mode() != ModeIdle {
		t.Fatalf("expected idle after selection, got %s", c.Mode())
	}
}

func TestSelectionUpwardsIsNormalised(t *testing.T) {
	c, _ := newTestController()
	_ = c.BeginSelection(cell(0, "11:00"))
	_ = c.ExtendSelection(cell(0, "10:00"))
	req, err := c.EndSelection()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if req.Start != "10:00" || req.End != "11:15" {
		t.Fatalf("unexpected interval %s-%s", req.Start, req.End)
	}
}

func TestSelectionTooShortIsRejected(t *testing.T) {
	c, _ := newTestController()
	_ = c.BeginSelection(cell(2, "09:00"))
	_ = c.ExtendSelection(cell(2, "09:15"))
	if _, err := c.EndSelection(); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
	if c.Mode() != ModeIdle {
		t.Fatalf("selection should be cleared, got %s", c.Mode())
	}
}

func TestSelectionAcrossDaysIsRejected(t *testing.T) {
	c, _ := newTestController()
	_ = c.BeginSelection(cell(1, "14:00"))
	_ = c.ExtendSelection(cell(2, "09:00"))
	if _, _, _, ok := c.Highlight(); ok {
		t.Fatalf("cross-day selection should not highlight")
	}
	if _, err := c.EndSelection(); !errors.Is(err, ErrCrossDay) {
		t.Fatalf("expected ErrCrossDay, got %v", err)
	}
	if c.Mode() != ModeIdle {
		t.Fatalf("selection should be cleared, got %s", c.Mode())
	}
}

func TestSelectionStepsWithoutSelection(t *testing.T) {
	c, _ := newTestController()
	if err := c.ExtendSelection(cell(0, "09:00")); !errors.Is(err, ErrNotSelecting) {
		t.Fatalf("expected ErrNotSelecting, got %v", err)
	}
	if _, err := c.EndSelection(); !errors.Is(err, ErrNotSelecting) {
		t.Fatalf("expected ErrNotSelecting, got %v", err)
	}
}

func TestToggleEdit(t *testing.T) {
	c, _ := newTestController()
	c.ToggleEdit("a")
	if id, ok := c.Editing(); !ok || id != "a" {
		t.Fatalf("expected editing a, got %q %v", id, ok)
	}
	c.ToggleEdit("b")
	if id, _ := c.Editing(); id != "b" {
		t.Fatalf("expected editing to switch to b, got %q", id)
	}
	c.ToggleEdit("b")
	if c.Mode() != ModeIdle {
		t.Fatalf("toggling the edited occurrence should return to idle, got %s", c.Mode())
	}
}

func TestDragRequiresEditMode(t *testing.T) {
	c, l := newTestController()
	if err := c.BeginDrag("a", KindMove, Point{}, 40, 4, 0); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	c.ToggleEdit("b")
	if err := c.BeginDrag("a", KindMove, Point{}, 40, 4, 0); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing for another occurrence, got %v", err)
	}
	if l.attached != 0 {
		t.Fatalf("listeners attached without a drag")
	}
}

// dragFrom puts a in edit mode at 10:00-11:00 on Wednesday and starts a drag.
func dragFrom(t *testing.T, c *Controller, kind Kind) (float64, float64) {
	t.Helper()
	e := occ("a", "10:00", "11:00")
	top, height := c.EntryGeometry(Entry{Occurrence: e})
	c.ToggleEdit("a")
	if err := c.BeginDrag("a", kind, Point{X: 25, Y: top + 1}, top, height, 2); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	return top, height
}

func TestMoveSnapsToQuarterHours(t *testing.T) {
	c, l := newTestController()
	top, _ := dragFrom(t, c, KindMove)

	// 2.8 slots down snaps to 3 slots, +45 minutes.
	pv, err := c.Drag(Point{X: 25, Y: top + 1 + 2.8})
	if err != nil {
		t.Fatalf("drag: %v", err)
	}
	if pv.Top != top+3 || pv.Day != 2 {
		t.Fatalf("unexpected preview %+v", pv)
	}
	if !c.Hidden("a", 2) {
		t.Fatalf("original should be hidden during drag")
	}
	if c.Hidden("a", 0) || pv.From != 2 {
		t.Fatalf("only the dragged occurrence is hidden, preview %+v", pv)
	}

	req, err := c.EndDrag()
	if err != nil {
		t.Fatalf("end drag: %v", err)
	}
	want := UpdateRequest{ID: "a", From: day(2026, time.October, 14), Date: day(2026, time.October, 14), Start: "10:45", End: "11:45"}
	if req != want {
		t.Fatalf("expected %+v, got %+v", want, req)
	}
	if l.attached != 1 || l.released != 1 {
		t.Fatalf("expected one attach and one release, got %d/%d", l.attached, l.released)
	}
	if c.Mode() != ModeIdle {
		t.Fatalf("edit mode should clear on commit, got %s", c.Mode())
	}
}

func TestMoveAcrossDaysClamps(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindMove)

	pv, _ := c.Drag(Point{X: 25 + 14, Y: top + 1})
	if pv.Day != 3 {
		t.Fatalf("expected one day to the right, got %d", pv.Day)
	}
	pv, _ = c.Drag(Point{X: 25 + 500, Y: top + 1})
	if pv.Day != 6 {
		t.Fatalf("expected clamp to last day, got %d", pv.Day)
	}
	pv, _ = c.Drag(Point{X: 25 - 500, Y: top + 1})
	if pv.Day != 0 {
		t.Fatalf("expected clamp to first day, got %d", pv.Day)
	}
	req, _ := c.EndDrag()
	if req.Date != day(2026, time.October, 12) || req.Start != "10:00" || req.End != "11:00" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestMoveStaysInsideTheDay(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindMove)
	_, _ = c.Drag(Point{X: 25, Y: top + 500})
	req, _ := c.EndDrag()
	if req.Start != "23:00" || req.End != "24:00" {
		t.Fatalf("expected clamp to end of day, got %s-%s", req.Start, req.End)
	}
}

func TestZeroMoveStillCommits(t *testing.T) {
	c, l := newTestController()
	dragFrom(t, c, KindMove)
	req, err := c.EndDrag()
	if err != nil {
		t.Fatalf("end drag: %v", err)
	}
	if req.Start != "10:00" || req.End != "11:00" || req.Date != day(2026, time.October, 14) {
		t.Fatalf("expected unchanged values, got %+v", req)
	}
	if l.released != 1 {
		t.Fatalf("listeners must be released, got %d", l.released)
	}
}

func beginDragOn(t *testing.T, c *Controller, kind Kind, start, end string) float64 {
	t.Helper()
	top, height := c.EntryGeometry(Entry{Occurrence: occ("s", start, end)})
	c.ToggleEdit("s")
	if err := c.BeginDrag("s", kind, Point{X: 25, Y: top}, top, height, 0); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	return top
}

func TestZeroMoveKeepsShortBlock(t *testing.T) {
	c, _ := newTestController()
	beginDragOn(t, c, KindMove, "09:00", "09:15")
	req, err := c.EndDrag()
	if err != nil {
		t.Fatalf("end drag: %v", err)
	}
	if req.Start != "09:00" || req.End != "09:15" {
		t.Fatalf("expected 09:00-09:15, got %s-%s", req.Start, req.End)
	}

	top := beginDragOn(t, c, KindMove, "09:00", "09:15")
	_, _ = c.Drag(Point{X: 25, Y: top})
	req, _ = c.EndDrag()
	if req.Start != "09:00" || req.End != "09:15" {
		t.Fatalf("expected 09:00-09:15 after a still drag, got %s-%s", req.Start, req.End)
	}
}

func TestMoveKeepsShortLength(t *testing.T) {
	c, _ := newTestController()
	top := beginDragOn(t, c, KindMove, "09:00", "09:15")
	_, _ = c.Drag(Point{X: 25, Y: top + 2})
	req, _ := c.EndDrag()
	if req.Start != "09:30" || req.End != "09:45" {
		t.Fatalf("expected 09:30-09:45, got %s-%s", req.Start, req.End)
	}
}

func TestZeroMoveKeepsOffGridClocks(t *testing.T) {
	c, _ := newTestController()
	beginDragOn(t, c, KindMove, "09:10", "09:50")
	req, _ := c.EndDrag()
	if req.Start != "09:10" || req.End != "09:50" {
		t.Fatalf("expected 09:10-09:50, got %s-%s", req.Start, req.End)
	}
}

func TestResizeShortBlockReachesFloor(t *testing.T) {
	c, _ := newTestController()
	top := beginDragOn(t, c, KindResizeBottom, "09:00", "09:15")
	_, _ = c.Drag(Point{X: 25, Y: top})
	req, _ := c.EndDrag()
	if req.Start != "09:00" || req.End != "09:30" {
		t.Fatalf("expected 09:00-09:30, got %s-%s", req.Start, req.End)
	}
}

func TestResizeBottomClampsToFloor(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindResizeBottom)
	pv, _ := c.Drag(Point{X: 25, Y: top + 1 - 10})
	if pv.Height != 2 || pv.Top != top {
		t.Fatalf("unexpected preview %+v", pv)
	}
	req, _ := c.EndDrag()
	if req.Start != "10:00" || req.End != "10:30" {
		t.Fatalf("expected 10:00-10:30, got %s-%s", req.Start, req.End)
	}
}

func TestResizeBottomGrows(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindResizeBottom)
	_, _ = c.Drag(Point{X: 25, Y: top + 1 + 2})
	req, _ := c.EndDrag()
	if req.Start != "10:00" || req.End != "11:30" {
		t.Fatalf("expected 10:00-11:30, got %s-%s", req.Start, req.End)
	}
}

func TestResizeTopClampsToFloor(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindResizeTop)
	_, _ = c.Drag(Point{X: 25, Y: top + 1 + 10})
	req, _ := c.EndDrag()
	if req.Start != "10:30" || req.End != "11:00" {
		t.Fatalf("expected 10:30-11:00, got %s-%s", req.Start, req.End)
	}
}

func TestResizeTopGrowsUpwards(t *testing.T) {
	c, _ := newTestController()
	top, _ := dragFrom(t, c, KindResizeTop)
	_, _ = c.Drag(Point{X: 80, Y: top + 1 - 4})
	req, _ := c.EndDrag()
	if req.Start != "09:00" || req.End != "11:00" || req.Date != day(2026, time.October, 14) {
		t.Fatalf("expected 09:00-11:00 on the same day, got %+v", req)
	}
}

func TestAbortReleasesListenersOnce(t *testing.T) {
	c, l := newTestController()
	dragFrom(t, c, KindMove)
	c.Abort()
	c.Abort()
	if l.attached != 1 || l.released != 1 {
		t.Fatalf("expected single attach/release, got %d/%d", l.attached, l.released)
	}
	if _, err := c.EndDrag(); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("expected ErrNotDragging after abort, got %v", err)
	}
	if _, ok := c.Preview(); ok {
		t.Fatalf("no preview expected after abort")
	}
}

func TestGesturesAreExclusive(t *testing.T) {
	c, _ := newTestController()
	dragFrom(t, c, KindMove)
	if err := c.BeginSelection(cell(0, "09:00")); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := c.BeginDrag("a", KindMove, Point{}, 0, 4, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	c.ToggleEdit("a")
	if c.Mode() != ModeDragging {
		t.Fatalf("toggle must not interrupt a drag, got %s", c.Mode())
	}
}

func TestHitTest(t *testing.T) {
	if got := HitTest(40, 4, 40, 1); got != KindResizeTop {
		t.Fatalf("expected resize-top, got %s", got)
	}
	if got := HitTest(40, 4, 43.5, 1); got != KindResizeBottom {
		t.Fatalf("expected resize-bottom, got %s", got)
	}
	if got := HitTest(40, 4, 41.5, 1); got != KindMove {
		t.Fatalf("expected move, got %s", got)
	}
	if got := HitTest(40, 2, 40, 1); got != KindMove {
		t.Fatalf("short occurrences only move, got %s", got)
	}
}

func TestUpdateRequestPatch(t *testing.T) {
	req := UpdateRequest{ID: "a", Date: day(2026, time.October, 15), Start: "10:45", End: "11:45"}
	tk := &task.Task{ID: "a", Anchor: day(2026, time.October, 14), Start: "10:00", End: "11:00"}
	req.Patch().Apply(tk)
	if tk.Anchor != req.Date || tk.Start != "10:45" || tk.End != "11:45" {
		t.Fatalf("unexpected task %+v", tk)
	}
}
