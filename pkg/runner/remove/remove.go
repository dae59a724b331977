// Package remove deletes tasks.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
)

type Remove struct {
	ID      string
	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	t, err := n.Service.Task(ctx, n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", color.New(color.FgRed).Sprint("deleted"), t.Name)
	return nil
}
