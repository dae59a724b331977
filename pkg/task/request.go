package task

import "strings"

// Draft is everything needed to create a Task. The store assigns the ID.
type Draft struct {
	Name         string
	Description  string
	Date         Date
	Start        string
	End          string
	Recurring    bool
	HighPriority bool
	Color        string
}

// Task materialises the draft.
func (d Draft) Task() *Task {
	return &Task{
		Name:         strings.TrimSpace(d.Name),
		Description:  d.Description,
		Anchor:       d.Date,
		Start:        d.Start,
		End:          d.End,
		Recurring:    d.Recurring,
		HighPriority: d.HighPriority,
		Color:        d.Color,
	}
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Date  *Date
	Start *string
	End   *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Date == nil && p.Start == nil && p.End == nil
}

// Apply writes the set fields onto t.
func (p Patch) Apply(t *Task) {
	if p.Date != nil {
		t.Anchor = *p.Date
	}
	if p.Start != nil {
		t.Start = *p.Start
	}
	if p.End != nil {
		t.End = *p.End
	}
}
