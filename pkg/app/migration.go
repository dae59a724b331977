package app

import (
	"context"
	"sort"

	"tableflip.dev/weekplan/pkg/task"
)

// MigrationCandidate is a one-off task whose day has passed without it being
// completed.
type MigrationCandidate struct {
	Task *task.Task
	// Age is the number of days since the task's day.
	Age int
}

// MigrationCandidates lists open one-off tasks scheduled before today, oldest
// first. Recurring tasks come back on their own and are never candidates.
func (s *Service) MigrationCandidates(ctx context.Context, today task.Date) ([]MigrationCandidate, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	done := s.Persistence.Completions(ctx)

	var out []MigrationCandidate
	for _, t := range s.Persistence.List(ctx) {
		if t == nil || t.Recurring || !t.Anchor.Before(today) {
			continue
		}
		if done.Has(t.ID, t.Anchor) {
			continue
		}
		out = append(out, MigrationCandidate{Task: t, Age: today.DaysSince(t.Anchor)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Age != out[j].Age {
			return out[i].Age > out[j].Age
		}
		return out[i].Task.Start < out[j].Task.Start
	})
	return out, nil
}

// Migrate moves every candidate to day, keeping its times, and returns the
// moved tasks.
func (s *Service) Migrate(ctx context.Context, today, day task.Date) ([]*task.Task, error) {
	candidates, err := s.MigrationCandidates(ctx, today)
	if err != nil {
		return nil, err
	}
	moved := make([]*task.Task, 0, len(candidates))
	for _, c := range candidates {
		d := day
		t, err := s.UpdateTask(ctx, c.Task.ID, task.Patch{Date: &d})
		if err != nil {
			return moved, err
		}
		moved = append(moved, t)
	}
	return moved, nil
}
