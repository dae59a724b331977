package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/publish"
)

func addPublish(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	login := false

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a week to Google Calendar",
		Long: `Publish copies every occurrence of the week into the calendar named by
gcal.calendar in the config file. Events are matched by occurrence, so
publishing again updates them in place.`,
		Example: `
weekplan publish --login
weekplan publish --on=2026-10-19
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			on, err := oo.GetOn(now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, settings, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := publish.Publish{
				On:       on,
				Login:    login,
				Calendar: settings.Calendar,
				Service:  svc,
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&login, "login", false, "Authorize access to the calendar before publishing.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
