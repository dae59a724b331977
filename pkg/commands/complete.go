package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	undo := false

	cmd := &cobra.Command{
		Use:     "complete ID",
		Aliases: []string{"completed", "done"},
		Short:   "Complete one occurrence of a task",
		Example: `
weekplan complete <task id>
weekplan complete <task id> --on=yesterday --undo
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			on, err := oo.GetOn(now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := complete.Complete{
				ID:      io.ID,
				On:      on,
				Undo:    undo,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the occurrence as not done.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
