package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/store"
	"tableflip.dev/weekplan/pkg/task"
)

// Service provides high-level operations over tasks. It is the store-side
// collaborator of the week grid: it applies create and update requests and
// hands back fresh week snapshots, so UIs, the CLI and MCP share one path.
type Service struct {
	Persistence store.Persistence
	Layout      grid.LayoutOptions
	WeekStartOn time.Weekday
}

var (
	errNoPersistence = errors.New("app: no persistence configured")
	// ErrInvalidTask is returned when a create or update would leave a task
	// with an unusable name or time range.
	ErrInvalidTask = errors.New("app: invalid task")
)

// New returns a Service using the layout and week settings of s.
func New(p store.Persistence, s *store.Settings) *Service {
	svc := &Service{Persistence: p, Layout: grid.DefaultLayoutOptions(), WeekStartOn: time.Monday}
	if s != nil {
		svc.Layout = grid.LayoutOptions{PaddingPercent: s.LayoutPadding, StaggerWidth: s.LayoutStagger}
		svc.WeekStartOn = s.WeekStart
	}
	return svc
}

// Tasks lists every stored task.
func (s *Service) Tasks(ctx context.Context) ([]*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// Task returns a single task.
func (s *Service) Task(ctx context.Context, id string) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Get(id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// WeekOf returns the first day of the week containing d.
func (s *Service) WeekOf(d task.Date) task.Date {
	return d.StartOfWeek(s.WeekStartOn)
}

// Week builds the layout of the seven days starting at weekStart from the
// current task list. Nothing is cached between calls.
func (s *Service) Week(ctx context.Context, weekStart task.Date) (grid.Week, error) {
	if s.Persistence == nil {
		return grid.Week{}, errNoPersistence
	}
	tasks := s.Persistence.List(ctx)
	done := s.Persistence.Completions(ctx)
	return grid.BuildWeek(tasks, weekStart, done, s.Layout), nil
}

// CreateTask stores a new task from d.
func (s *Service) CreateTask(ctx context.Context, d task.Draft) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	t := d.Task()
	if t.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidTask)
	}
	if t.Anchor.IsZero() {
		return nil, fmt.Errorf("%w: date required", ErrInvalidTask)
	}
	if err := validateTimes(t); err != nil {
		return nil, err
	}
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask applies p to the task with the given id. Moving a recurring
// task moves its whole series.
func (s *Service) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	t, err := s.Persistence.Get(id)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return t, nil
	}
	p.Apply(t)
	if err := validateTimes(t); err != nil {
		return nil, err
	}
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply commits a request emitted by the grid's drag flow. A recurring task
// moves as a series: its anchor shifts by the days the occurrence moved, so
// earlier occurrences stay where they are and a still drag changes nothing.
func (s *Service) Apply(ctx context.Context, req grid.UpdateRequest) (*task.Task, error) {
	p := req.Patch()
	if !req.From.IsZero() {
		if s.Persistence == nil {
			return nil, errNoPersistence
		}
		t, err := s.Persistence.Get(req.ID)
		if err != nil {
			return nil, err
		}
		if t.Recurring {
			anchor := t.Anchor.AddDays(req.Date.DaysSince(req.From))
			p.Date = &anchor
		}
	}
	return s.UpdateTask(ctx, req.ID, p)
}

// Delete removes a task and its completion records.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.Delete(id)
}

// Skip suppresses the occurrence of a recurring task on d. For a one-off
// task that means deleting it.
func (s *Service) Skip(ctx context.Context, id string, d task.Date) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	t, err := s.Persistence.Get(id)
	if err != nil {
		return nil, err
	}
	if !grid.Occurs(t, d) {
		return nil, fmt.Errorf("app: %s does not occur on %s", t.Name, d)
	}
	if !t.Recurring {
		return t, s.Persistence.Delete(id)
	}
	t.AddException(d)
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleComplete flips the completion of the occurrence of id on d and
// returns the new state.
func (s *Service) ToggleComplete(ctx context.Context, id string, d task.Date) (bool, error) {
	if s.Persistence == nil {
		return false, errNoPersistence
	}
	done := !s.Persistence.Completions(ctx).Has(id, d)
	return done, s.SetComplete(ctx, id, d, done)
}

// SetComplete marks the occurrence of id on d as done or open.
func (s *Service) SetComplete(ctx context.Context, id string, d task.Date, done bool) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	t, err := s.Persistence.Get(id)
	if err != nil {
		return err
	}
	if !grid.Occurs(t, d) {
		return fmt.Errorf("app: %s does not occur on %s", t.Name, d)
	}
	return s.Persistence.SetCompleted(id, d, done)
}

// EndAfter returns the clock span minutes after start. The result may not run
// past midnight.
func EndAfter(start string, span int) (string, error) {
	from, ok := grid.MinutesFromMidnight(start)
	if !ok {
		return "", fmt.Errorf("%w: bad start time %q", ErrInvalidTask, start)
	}
	if from+span > grid.MinutesPerDay {
		return "", fmt.Errorf("%w: %s plus %dm runs past midnight", ErrInvalidTask, start, span)
	}
	return grid.FormatClock(from + span), nil
}

func validateTimes(t *task.Task) error {
	start, end := strings.TrimSpace(t.Start), strings.TrimSpace(t.End)
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return fmt.Errorf("%w: start and end must be set together", ErrInvalidTask)
	}
	if _, _, ok := grid.Interval(t); !ok {
		return fmt.Errorf("%w: %s-%s is not a valid time range", ErrInvalidTask, start, end)
	}
	return nil
}
