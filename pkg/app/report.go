package app

import (
	"context"
	"sort"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

// ReportItem is one occurrence of the week and whether it was done.
type ReportItem struct {
	Task      *task.Task
	Date      task.Date
	Minutes   int
	Completed bool
}

// ReportDay groups the occurrences of one day in start order.
type ReportDay struct {
	Date    task.Date
	Items   []ReportItem
	Planned int
	Done    int
}

// ReportResult summarises how much of a week's plan was completed. Minutes
// count block lengths, not time actually spent.
type ReportResult struct {
	Start task.Date
	Days  []ReportDay

	Occurrences int
	Completed   int
	Planned     int
	Done        int
}

// Report tallies the occurrences of the week starting at weekStart.
func (s *Service) Report(ctx context.Context, weekStart task.Date) (ReportResult, error) {
	w, err := s.Week(ctx, weekStart)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Start: w.Start}
	for _, d := range w.Days {
		day := ReportDay{Date: d.Date}
		for _, e := range byStart(d.Entries) {
			item := ReportItem{Task: e.Task, Date: d.Date, Minutes: e.End - e.Start, Completed: e.Completed}
			day.Items = append(day.Items, item)
			day.Planned += item.Minutes
			if item.Completed {
				day.Done += item.Minutes
				result.Completed++
			}
			result.Occurrences++
		}
		result.Planned += day.Planned
		result.Done += day.Done
		result.Days = append(result.Days, day)
	}
	return result, nil
}

// byStart orders entries by start time. Layout order is by duration first,
// which reads oddly in a report.
func byStart(entries []grid.Entry) []grid.Entry {
	out := make([]grid.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
