// Package complete provides the runner logic for completing occurrences.
package complete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/task"
)

// Complete marks the occurrence of a task on a day done, or open again.
type Complete struct {
	ID      string
	On      task.Date
	Undo    bool
	Service *app.Service
	Out     io.Writer
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if err := n.Service.SetComplete(ctx, n.ID, n.On, !n.Undo); err != nil {
		return err
	}
	t, err := n.Service.Task(ctx, n.ID)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	state := color.New(color.FgGreen).Sprint("completed")
	if n.Undo {
		state = color.New(color.FgYellow).Sprint("reopened")
	}
	_, _ = fmt.Fprintf(out, "%s %s on %s\n", state, t.Name, n.On)
	return nil
}
