// Package skip drops a single occurrence of a task.
package skip

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/task"
)

type Skip struct {
	ID      string
	On      task.Date
	Service *app.Service
	Out     io.Writer
}

func (n *Skip) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not skip, no service")
	}
	t, err := n.Service.Skip(ctx, n.ID, n.On)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if t.Recurring {
		_, _ = fmt.Fprintf(out, "skipped %s on %s\n", t.Name, n.On)
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", color.New(color.FgRed).Sprint("deleted"), t.Name)
	return nil
}
