package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/weekplan/pkg/grid"
)

// Layout prints the computed column geometry for every entry of the week.
func (pp *PrettyPrint) Layout(w grid.Week) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40

	header := []interface{}{
		bold.Sprint("Day"), bold.Sprint("Time"), bold.Sprint("Col"),
		bold.Sprint("Left%"), bold.Sprint("Width%"), bold.Sprint("Z"), bold.Sprint("Task"),
	}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	tbl.AddRow(header...)

	for _, d := range w.Days {
		for _, e := range d.Entries {
			row := []interface{}{
				d.Date.Time().Format("Mon 02"),
				fmt.Sprintf("%s-%s", grid.FormatClock(e.Start), grid.FormatClock(e.End)),
				fmt.Sprintf("%d/%d", e.Column+1, e.TotalColumns),
				fmt.Sprintf("%.1f", e.LeftPercent),
				fmt.Sprintf("%.1f", e.WidthPercent),
				e.ZOrder,
				e.Task.Name,
			}
			if pp.ShowID {
				row = append(row, e.Task.ID)
			}
			tbl.AddRow(row...)
		}
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}
