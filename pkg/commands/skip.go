package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/skip"
)

func addSkip(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "skip ID",
		Short: "Skip one occurrence of a recurring task",
		Long: `Skip drops the occurrence on the given day. Skipping a task that does
not repeat deletes it.`,
		Example: `
weekplan skip <task id> --on=2026-10-16
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
			s := skip.Skip{ID: io.ID, On: on, Service: svc, Out: cmd.OutOrStdout()}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
