package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions are the descriptive attributes of a new task.
type TaskOptions struct {
	Description string
	Recurring   bool
	Priority    bool
	Color       string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "", "Notes for the task.")
	cmd.Flags().BoolVarP(&o.Recurring, "recurring", "r", false, "Repeat every week on the same weekday.")
	cmd.Flags().BoolVarP(&o.Priority, "priority", "p", false, "Flag the task as high priority.")
	cmd.Flags().StringVar(&o.Color, "color", "", `Block color, example: --color="#5f87af".`)
}
