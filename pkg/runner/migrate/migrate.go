// Package migrate carries unfinished one-off tasks forward.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/printers"
	"tableflip.dev/weekplan/pkg/task"
)

// Migrate lists the open tasks left behind before Today. With Apply set they
// are moved to To.
type Migrate struct {
	Today   task.Date
	To      task.Date
	Apply   bool
	Service *app.Service
	Out     io.Writer
}

func (n *Migrate) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not migrate, no service")
	}
	pp := printers.PrettyPrint{Out: n.Out}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if !n.Apply {
		candidates, err := n.Service.MigrationCandidates(ctx, n.Today)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			_, _ = fmt.Fprintln(out, "Nothing left behind.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, c := range candidates {
			_, _ = faint.Fprintf(out, "%3dd ", c.Age)
			pp.Task(c.Task)
		}
		return nil
	}

	moved, err := n.Service.Migrate(ctx, n.Today, n.To)
	for _, t := range moved {
		pp.Task(t)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "moved %d task(s) to %s\n", len(moved), n.To)
	return nil
}
