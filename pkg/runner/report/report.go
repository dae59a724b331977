// Package report prints the completion summary of a week.
package report

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/printers"
	"tableflip.dev/weekplan/pkg/task"
)

type Report struct {
	On      task.Date
	Service *app.Service
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	r, err := n.Service.Report(ctx, n.Service.WeekOf(n.On))
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Report(r)
	return nil
}
