// Package week prints the agenda or the computed layout of one week.
package week

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/printers"
	"tableflip.dev/weekplan/pkg/task"
)

// Week shows the week containing On.
type Week struct {
	On      task.Date
	ShowID  bool
	Layout  bool
	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (n *Week) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show week, no service")
	}
	w, err := n.Service.Week(ctx, n.Service.WeekOf(n.On))
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Now: n.Now}
	if n.Layout {
		pp.Layout(w)
		return nil
	}
	pp.NewLine()
	pp.Week(w)
	return nil
}
