// Package move reschedules a task the way dragging it in the grid would.
package move

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/printers"
	"tableflip.dev/weekplan/pkg/task"
)

type Move struct {
	ID    string
	Date  *task.Date
	Start string
	End   string

	Service *app.Service
	Out     io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	cur, err := n.Service.Task(ctx, n.ID)
	if err != nil {
		return err
	}

	req := grid.UpdateRequest{ID: n.ID, Date: cur.Anchor, Start: cur.Start, End: cur.End}
	if n.Date != nil {
		req.Date = *n.Date
	}
	if n.Start != "" {
		req.Start = n.Start
	}
	if n.End != "" {
		req.End = n.End
	}

	t, err := n.Service.Apply(ctx, req)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Task(t)
	return nil
}
