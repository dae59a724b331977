package grid

import "tableflip.dev/weekplan/pkg/task"

// Occurrence is a task materialised on one date. Start and End are minutes
// from midnight with End > Start.
type Occurrence struct {
	Task  *task.Task
	Date  task.Date
	Start int
	End   int
}

// Key is the "taskId_date" identity used for completion tracking.
func (o Occurrence) Key() string {
	return task.OccurrenceKey(o.Task.ID, o.Date)
}

// Duration in minutes.
func (o Occurrence) Duration() int {
	return o.End - o.Start
}

// Overlaps reports whether the two intervals strictly overlap. Touching
// intervals do not.
func (o Occurrence) Overlaps(other Occurrence) bool {
	return max(o.Start, other.Start) < min(o.End, other.End)
}

// Occurs reports whether t has an occurrence on date. Single tasks occur on
// their anchor date; recurring tasks occur weekly on the anchor's weekday from
// the anchor onwards. Dates listed as exceptions never occur.
func Occurs(t *task.Task, date task.Date) bool {
	if t == nil || t.HasException(date) {
		return false
	}
	if !t.Recurring {
		return date == t.Anchor
	}
	return date.Weekday() == t.Anchor.Weekday() && !date.Before(t.Anchor)
}

// Interval parses the task's clock times. Tasks that are not time-blocked,
// have malformed times, or would have a non-positive duration report false.
func Interval(t *task.Task) (int, int, bool) {
	if !t.TimeBlocked() {
		return 0, 0, false
	}
	start, ok := MinutesFromMidnight(t.Start)
	if !ok {
		return 0, 0, false
	}
	end, ok := MinutesFromMidnight(t.End)
	if !ok || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// ResolveDay returns the occurrences of tasks on date, in input order.
func ResolveDay(tasks []*task.Task, date task.Date) []Occurrence {
	var out []Occurrence
	for _, t := range tasks {
		if t == nil {
			continue
		}
		start, end, ok := Interval(t)
		if !ok || !Occurs(t, date) {
			continue
		}
		out = append(out, Occurrence{Task: t, Date: date, Start: start, End: end})
	}
	return out
}

// ResolveWeek resolves the seven days starting at weekStart.
func ResolveWeek(tasks []*task.Task, weekStart task.Date) [DaysPerWeek][]Occurrence {
	var days [DaysPerWeek][]Occurrence
	for i := range days {
		days[i] = ResolveDay(tasks, weekStart.AddDays(i))
	}
	return days
}
