package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Now defaults to time.Now and picks the highlighted day.
	Now func() time.Time
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

const dayLabel = "Mon 02 Jan"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) today() task.Date {
	if pp.Now != nil {
		return task.DateOf(pp.Now())
	}
	return task.DateOf(time.Now())
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// Week prints an agenda, one block per day, in layout order.
func (pp *PrettyPrint) Week(w grid.Week) {
	today := pp.today()
	t := color.New(color.Bold, color.Underline)
	now := color.New(color.Bold, color.Underline, color.FgHiCyan)

	for _, d := range w.Days {
		title := d.Date.Time().Format(dayLabel)
		if pp.ShowID {
			_, _ = t.Fprint(pp.out(), spacing)
		}
		if d.Date == today {
			_, _ = now.Fprintln(pp.out(), title+" (today)")
		} else {
			_, _ = t.Fprintln(pp.out(), title)
		}
		pp.entries(d.Entries)
	}
}

func (pp *PrettyPrint) entries(entries []grid.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	p := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	r := color.New(color.FgHiRed, color.Bold)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.Task.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(e.Task.ID))))
		}
		mark := " "
		if e.Task.HighPriority {
			mark = r.Sprint("!")
		}
		line := fmt.Sprintf("%s-%s %s", grid.FormatClock(e.Start), grid.FormatClock(e.End), e.Task.Name)
		if e.Task.Recurring {
			line += " ↻"
		}
		printer := p
		if e.Completed {
			printer = done
		}
		_, _ = fmt.Fprint(pp.out(), mark, " ")
		_, _ = printer.Fprintln(pp.out(), line)
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Task prints a single task summary.
func (pp *PrettyPrint) Task(t *task.Task) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), t.ID, " ")
	_, _ = fmt.Fprintln(pp.out(), t.String())
}
