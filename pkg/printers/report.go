package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/timeutil"
)

// Report prints how much of the week was done, day by day.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	end := r.Start.AddDays(6)
	pp.Title(fmt.Sprintf("Report · week of %s (%s → %s)", r.Start.Time().Format(dayLabel), r.Start, end))

	if r.Occurrences == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  Nothing planned this week.")
		pp.NewLine()
		return
	}

	bold := color.New(color.Bold)
	done := color.New(color.FgGreen)
	open := color.New(color.Faint)
	for _, d := range r.Days {
		if len(d.Items) == 0 {
			continue
		}
		pp.NewLine()
		_, _ = bold.Fprintf(pp.out(), "%s  %s / %s\n", d.Date.Time().Format(dayLabel),
			timeutil.FormatSpan(d.Done), timeutil.FormatSpan(d.Planned))
		for _, item := range d.Items {
			if item.Completed {
				_, _ = done.Fprintf(pp.out(), "  ✓ %s (%s)\n", item.Task.Name, timeutil.FormatSpan(item.Minutes))
			} else {
				_, _ = open.Fprintf(pp.out(), "  · %s (%s)\n", item.Task.Name, timeutil.FormatSpan(item.Minutes))
			}
		}
	}

	pp.NewLine()
	_, _ = bold.Fprintf(pp.out(), "%d of %d done, %s of %s planned\n",
		r.Completed, r.Occurrences, timeutil.FormatSpan(r.Done), timeutil.FormatSpan(r.Planned))
}
