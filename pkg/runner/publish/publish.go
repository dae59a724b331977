// Package publish pushes a week to Google Calendar.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/gcal"
	"tableflip.dev/weekplan/pkg/store"
	"tableflip.dev/weekplan/pkg/task"
)

type Publish struct {
	On       task.Date
	Login    bool
	Calendar store.CalendarSettings
	Service  *app.Service

	In  io.Reader
	Out io.Writer
}

func (n *Publish) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not publish, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Login {
		cfg, err := gcal.Config(n.Calendar.Credentials)
		if err != nil {
			return err
		}
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		if err := gcal.Login(ctx, cfg, n.Calendar.Token, in, out); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "token saved to %s\n", n.Calendar.Token)
	}

	w, err := n.Service.Week(ctx, n.Service.WeekOf(n.On))
	if err != nil {
		return err
	}
	p, err := gcal.Open(ctx, n.Calendar)
	if err != nil {
		return err
	}
	res, err := p.Publish(ctx, w)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	_, _ = fmt.Fprintf(out, "%s %s: %d created, %d updated, %d unchanged\n",
		bold.Sprint(n.Calendar.Name), w.Start, res.Created, res.Updated, res.Unchanged)
	return nil
}
