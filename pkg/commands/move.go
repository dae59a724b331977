package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/move"
	"tableflip.dev/weekplan/pkg/task"
)

func addMove(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	to := &options.TimeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "move ID",
		Aliases: []string{"mv", "reschedule"},
		Short:   "Move a task to another day or time",
		Example: `
weekplan move 1a2b3c --on=friday
weekplan move 1a2b3c --start=10:00 --for=1h
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var date *task.Date
			if cmd.Flags().Changed("on") {
				d, err := oo.GetOn(now())
				if err != nil {
					return output.HandleError(err)
				}
				date = &d
			}
			start, end, err := to.Resolve()
			if err != nil {
				return output.HandleError(err)
			}
			if date == nil && start == "" {
				return output.HandleError(errors.New("nothing to move, use --on and/or --start"))
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := move.Move{
				ID:      io.ID,
				Date:    date,
				Start:   start,
				End:     end,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddTimeArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
