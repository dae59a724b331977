package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/migrate"
	"tableflip.dev/weekplan/pkg/task"
)

func addMigrate(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	apply := false

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Carry unfinished tasks from past days forward",
		Long: `Migrate lists one-off tasks from before today that were never completed.
With --apply they are moved to the day given by --on, keeping their times.`,
		Example: `
weekplan migrate
weekplan migrate --apply --on=tomorrow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			to, err := oo.GetOn(now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			m := migrate.Migrate{
				Today:   task.DateOf(now()),
				To:      to,
				Apply:   apply,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			err = m.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&apply, "apply", false, "Move the listed tasks instead of only listing them.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
