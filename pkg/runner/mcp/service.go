// Package mcp provides the Model Context Protocol server integration for weekplan.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
	"tableflip.dev/weekplan/pkg/timeutil"
)

// Service adapts the planner service to transport-friendly values.
type Service struct {
	App *app.Service
	Now func() time.Time
}

// CreateTaskOptions captures the parameters used to create a task.
type CreateTaskOptions struct {
	Name         string
	Description  string
	Date         string
	Start        string
	End          string
	Duration     string
	Recurring    bool
	HighPriority bool
	Color        string
}

// UpdateTaskOptions moves or resizes a task. Empty fields keep their value.
type UpdateTaskOptions struct {
	ID    string
	Date  string
	Start string
	End   string
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Date         string   `json:"date"`
	Start        string   `json:"startTime,omitempty"`
	End          string   `json:"endTime,omitempty"`
	Recurring    bool     `json:"recurring"`
	Exceptions   []string `json:"exceptions,omitempty"`
	HighPriority bool     `json:"highPriority"`
	Color        string   `json:"color,omitempty"`
}

// EntryDTO is one laid out occurrence.
type EntryDTO struct {
	TaskID       string  `json:"taskId"`
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	Start        string  `json:"startTime"`
	End          string  `json:"endTime"`
	Column       int     `json:"column"`
	TotalColumns int     `json:"totalColumns"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
	ZOrder       int     `json:"zIndex"`
	Completed    bool    `json:"completed"`
	Recurring    bool    `json:"recurring"`
	HighPriority bool    `json:"highPriority"`
}

// DayDTO is one day column.
type DayDTO struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Entries []EntryDTO `json:"entries"`
}

// WeekDTO is the full week layout.
type WeekDTO struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Count int      `json:"count"`
	Days  []DayDTO `json:"days"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc, Now: time.Now}
}

func (s *Service) today() task.Date {
	if s.Now == nil {
		return task.DateOf(time.Now())
	}
	return task.DateOf(s.Now())
}

// date parses an ISO date, defaulting to today.
func (s *Service) date(raw string) (task.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.today(), nil
	}
	d, err := task.ParseDate(raw)
	if err != nil {
		return task.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}

// ListWeek lays out the week containing on.
func (s *Service) ListWeek(ctx context.Context, on string) (*WeekDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	d, err := s.date(on)
	if err != nil {
		return nil, err
	}
	w, err := s.App.Week(ctx, s.App.WeekOf(d))
	if err != nil {
		return nil, err
	}
	return toWeekDTO(w), nil
}

// CreateTask creates a time-blocked task. End may be given directly or as a
// duration after Start.
func (s *Service) CreateTask(ctx context.Context, opts CreateTaskOptions) (*TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	d, err := s.date(opts.Date)
	if err != nil {
		return nil, err
	}
	end := strings.TrimSpace(opts.End)
	if end == "" && strings.TrimSpace(opts.Duration) != "" {
		span, err := timeutil.ParseSpan(opts.Duration)
		if err != nil {
			return nil, err
		}
		if end, err = app.EndAfter(opts.Start, span); err != nil {
			return nil, err
		}
	}
	t, err := s.App.CreateTask(ctx, task.Draft{
		Name:         opts.Name,
		Description:  opts.Description,
		Date:         d,
		Start:        strings.TrimSpace(opts.Start),
		End:          end,
		Recurring:    opts.Recurring,
		HighPriority: opts.HighPriority,
		Color:        opts.Color,
	})
	if err != nil {
		return nil, err
	}
	return toTaskDTO(t), nil
}

// UpdateTask issues the same update a drag would.
func (s *Service) UpdateTask(ctx context.Context, opts UpdateTaskOptions) (*TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	var p task.Patch
	if raw := strings.TrimSpace(opts.Date); raw != "" {
		d, err := s.date(raw)
		if err != nil {
			return nil, err
		}
		p.Date = &d
	}
	if start := strings.TrimSpace(opts.Start); start != "" {
		p.Start = &start
	}
	if end := strings.TrimSpace(opts.End); end != "" {
		p.End = &end
	}
	t, err := s.App.UpdateTask(ctx, opts.ID, p)
	if err != nil {
		return nil, err
	}
	return toTaskDTO(t), nil
}

// CompleteOccurrence marks the occurrence of id on date done or open.
func (s *Service) CompleteOccurrence(ctx context.Context, id, date string, done bool) (string, error) {
	if s.App == nil {
		return "", errors.New("service is not configured")
	}
	d, err := s.date(date)
	if err != nil {
		return "", err
	}
	if err := s.App.SetComplete(ctx, id, d, done); err != nil {
		return "", err
	}
	return task.OccurrenceKey(id, d), nil
}

// SkipOccurrence drops the occurrence of id on date. The task is nil when a
// one-off task was deleted.
func (s *Service) SkipOccurrence(ctx context.Context, id, date string) (*TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	d, err := s.date(date)
	if err != nil {
		return nil, err
	}
	t, err := s.App.Skip(ctx, id, d)
	if err != nil {
		return nil, err
	}
	if !t.Recurring {
		return nil, nil
	}
	return toTaskDTO(t), nil
}

// TaskByID fetches a single task.
func (s *Service) TaskByID(ctx context.Context, id string) (*TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	t, err := s.App.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTaskDTO(t), nil
}

func toTaskDTO(t *task.Task) *TaskDTO {
	dto := &TaskDTO{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Date:         t.Anchor.String(),
		Start:        t.Start,
		End:          t.End,
		Recurring:    t.Recurring,
		HighPriority: t.HighPriority,
		Color:        t.Color,
	}
	for _, ex := range t.Exceptions {
		dto.Exceptions = append(dto.Exceptions, ex.String())
	}
	return dto
}

func toWeekDTO(w grid.Week) *WeekDTO {
	dto := &WeekDTO{
		Start: w.Start.String(),
		End:   w.Start.AddDays(grid.DaysPerWeek - 1).String(),
		Count: w.Len(),
		Days:  make([]DayDTO, 0, grid.DaysPerWeek),
	}
	for _, d := range w.Days {
		day := DayDTO{Date: d.Date.String(), Weekday: d.Date.Weekday().String(), Entries: make([]EntryDTO, 0, len(d.Entries))}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, EntryDTO{
				TaskID:       e.Task.ID,
				Key:          e.Key(),
				Name:         e.Task.Name,
				Start:        grid.FormatClock(e.Start),
				End:          grid.FormatClock(e.End),
				Column:       e.Column,
				TotalColumns: e.TotalColumns,
				LeftPercent:  e.LeftPercent,
				WidthPercent: e.WidthPercent,
				ZOrder:       e.ZOrder,
				Completed:    e.Completed,
				Recurring:    e.Task.Recurring,
				HighPriority: e.Task.HighPriority,
			})
		}
		dto.Days = append(dto.Days, day)
	}
	return dto
}
