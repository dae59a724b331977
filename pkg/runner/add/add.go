// Package add creates a task from the command line.
package add

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/printers"
	"tableflip.dev/weekplan/pkg/task"
)

type Add struct {
	Draft   task.Draft
	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

// Do stores the task and prints the week it landed in.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	t, err := n.Service.CreateTask(ctx, n.Draft)
	if err != nil {
		return err
	}
	w, err := n.Service.Week(ctx, n.Service.WeekOf(t.Anchor))
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out, Now: n.Now}
	pp.Task(t)
	pp.NewLine()
	pp.Week(w)
	return nil
}
