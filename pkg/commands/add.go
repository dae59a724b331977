package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/commands/options"
	"tableflip.dev/weekplan/pkg/runner/add"
	"tableflip.dev/weekplan/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	to := &options.TimeOptions{}
	ko := &options.TaskOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task",
		Example: `
weekplan add standup --start=09:00 --for=15m --recurring
weekplan add review the roadmap --on=tomorrow --start=14:00 --end=15:30 -p
weekplan add call the bank
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(now())
			if err != nil {
				return output.HandleError(err)
			}
			start, end, err := to.Resolve()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Draft: task.Draft{
					Name:         name,
					Description:  ko.Description,
					Date:         on,
					Start:        start,
					End:          end,
					Recurring:    ko.Recurring,
					HighPriority: ko.Priority,
					Color:        ko.Color,
				},
				Service: svc,
				Out:     cmd.OutOrStdout(),
				Now:     now,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddTimeArgs(cmd, to)
	options.AddTaskArgs(cmd, ko)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
