package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	wo := &options.WeekOptions{}

	cmd := &cobra.Command{
		Use:     "week",
		Aliases: []string{"w", "agenda"},
		Short:   "Show a week",
		Example: `
weekplan week
weekplan week --on=tomorrow -k
weekplan week --on=2026-10-14 --layout
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := week.Week{
				On:      on,
				ShowID:  io.ShowID,
				Layout:  wo.Layout,
				Service: svc,
				Out:     cmd.OutOrStdout(),
				Now:     now,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddWeekArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
