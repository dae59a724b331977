package commands

import (
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/store"
)

var (
	output = &options.OutputOptions{}

	// now is replaced in tests.
	now = time.Now
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "weekplan",
		Short: base.Wrap80("Plan your week on a quarter hour time grid."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWeek(topLevel)
	addAdd(topLevel)
	addMove(topLevel)
	addComplete(topLevel)
	addSkip(topLevel)
	addDelete(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addReport(topLevel)
	addMigrate(topLevel)
	addPublish(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func loadService() (*app.Service, *store.Settings, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(settings)
	if err != nil {
		return nil, nil, err
	}
	return app.New(p, settings), settings, nil
}
