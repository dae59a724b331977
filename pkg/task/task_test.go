package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateStartOfWeek(t *testing.T) {
	thu := Date{Year: 2026, Month: time.October, Day: 15}
	if got := thu.StartOfWeek(time.Monday); got != (Date{2026, time.October, 12}) {
		t.Fatalf("expected monday 12th, got %s", got)
	}
	if got := thu.StartOfWeek(time.Sunday); got != (Date{2026, time.October, 11}) {
		t.Fatalf("expected sunday 11th, got %s", got)
	}
	if got := thu.StartOfWeek(time.Thursday); got != thu {
		t.Fatalf("expected same day, got %s", got)
	}
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := Date{Year: 2026, Month: time.December, Day: 30}
	if got := d.AddDays(3); got != (Date{2027, time.January, 2}) {
		t.Fatalf("unexpected date %s", got)
	}
	if got := d.AddDays(3).DaysSince(d); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}

func TestTaskJSONRoundTripKeepsDates(t *testing.T) {
	in := &Task{
		ID:         "abc",
		Name:       "Standup",
		Anchor:     Date{2026, time.October, 12},
		Start:      "09:00",
		End:        "09:15",
		Recurring:  true,
		Exceptions: []Date{{2026, time.October, 19}},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Task
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Anchor != in.Anchor {
		t.Fatalf("anchor mismatch: %s", out.Anchor)
	}
	if !out.HasException(Date{2026, time.October, 19}) {
		t.Fatalf("expected exception to survive: %s", b)
	}
}

func TestOccurrenceKeyRoundTrip(t *testing.T) {
	d := Date{2026, time.October, 15}
	key := OccurrenceKey("a_b", d)
	id, got, err := ParseOccurrenceKey(key)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "a_b" || got != d {
		t.Fatalf("unexpected split %q %s", id, got)
	}
	if _, _, err := ParseOccurrenceKey("nodate"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}

func TestPatchApply(t *testing.T) {
	tk := &Task{Anchor: Date{2026, time.October, 12}, Start: "10:00", End: "11:00"}
	start := "10:45"
	Patch{Start: &start}.Apply(tk)
	if tk.Start != "10:45" || tk.End != "11:00" {
		t.Fatalf("unexpected task after patch: %+v", tk)
	}
	if !(Patch{}).Empty() {
		t.Fatalf("zero patch should be empty")
	}
}
