// Package task holds the planner's persisted record type and the requests
// used to create and change it.
package task

import (
	"fmt"
	"strings"
)

// Task is a planned item. Tasks with both Start and End set are time-blocked
// and take part in the week grid; the rest are day-level todos.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Anchor is the day the task was created for. Recurring tasks repeat on
	// Anchor's weekday from Anchor onwards.
	Anchor     Date   `json:"date"`
	Start      string `json:"startTime,omitempty"`
	End        string `json:"endTime,omitempty"`
	Recurring  bool   `json:"recurring,omitempty"`
	Exceptions []Date `json:"exceptions,omitempty"`

	HighPriority bool   `json:"highPriority,omitempty"`
	Color        string `json:"color,omitempty"`

	Created Timestamp `json:"created"`
}

// TimeBlocked reports whether the task carries both a start and an end time.
func (t *Task) TimeBlocked() bool {
	return t != nil && strings.TrimSpace(t.Start) != "" && strings.TrimSpace(t.End) != ""
}

// HasException reports whether the occurrence on d has been skipped.
func (t *Task) HasException(d Date) bool {
	for _, ex := range t.Exceptions {
		if ex == d {
			return true
		}
	}
	return false
}

// AddException suppresses the occurrence on d. It returns false when d was
// already excluded.
func (t *Task) AddException(d Date) bool {
	if t.HasException(d) {
		return false
	}
	t.Exceptions = append(t.Exceptions, d)
	return true
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Exceptions != nil {
		cp.Exceptions = append([]Date(nil), t.Exceptions...)
	}
	return &cp
}

func (t *Task) String() string {
	when := t.Anchor.String()
	if t.TimeBlocked() {
		when = fmt.Sprintf("%s %s-%s", when, t.Start, t.End)
	}
	return fmt.Sprintf("%s (%s)", t.Name, when)
}

// OccurrenceKey identifies one dated occurrence of a task, in the form
// "taskId_date". Completion is tracked per key.
func OccurrenceKey(id string, d Date) string {
	return id + "_" + d.String()
}

// ParseOccurrenceKey splits a key produced by OccurrenceKey.
func ParseOccurrenceKey(key string) (string, Date, error) {
	i := strings.LastIndex(key, "_")
	if i <= 0 {
		return "", Date{}, fmt.Errorf("task: malformed occurrence key %q", key)
	}
	d, err := ParseDate(key[i+1:])
	if err != nil {
		return "", Date{}, err
	}
	return key[:i], d, nil
}

// Completions is the read-only set of completed occurrence keys.
type Completions map[string]struct{}

// Has reports whether the occurrence of id on d is complete.
func (c Completions) Has(id string, d Date) bool {
	_, ok := c[OccurrenceKey(id, d)]
	return ok
}
