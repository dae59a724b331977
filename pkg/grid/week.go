package grid

import "tableflip.dev/weekplan/pkg/task"

// Day is one laid out column of the week.
type Day struct {
	Date    task.Date
	Entries []Entry
}

// Week is the renderable layout for seven consecutive days.
type Week struct {
	Start task.Date
	Days  [DaysPerWeek]Day
}

// BuildWeek resolves and lays out the week starting at weekStart. completed
// only marks entries for dimmed rendering and may be nil.
func BuildWeek(tasks []*task.Task, weekStart task.Date, completed task.Completions, opts LayoutOptions) Week {
	w := Week{Start: weekStart}
	resolved := ResolveWeek(tasks, weekStart)
	for i := range w.Days {
		entries := LayoutDay(resolved[i], opts)
		for j := range entries {
			entries[j].Completed = completed.Has(entries[j].Task.ID, entries[j].Date)
		}
		w.Days[i] = Day{Date: weekStart.AddDays(i), Entries: entries}
	}
	return w
}

// DayIndex returns the column of d, or -1 when d is outside the week.
func (w Week) DayIndex(d task.Date) int {
	i := d.DaysSince(w.Start)
	if i < 0 || i >= DaysPerWeek {
		return -1
	}
	return i
}

// Find returns the entry for task id in day column day.
func (w Week) Find(day int, id string) (Entry, bool) {
	if day < 0 || day >= DaysPerWeek {
		return Entry{}, false
	}
	for _, e := range w.Days[day].Entries {
		if e.Task.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len is the total number of laid out entries.
func (w Week) Len() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.Entries)
	}
	return n
}
