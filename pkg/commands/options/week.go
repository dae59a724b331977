package options

import (
	"github.com/spf13/cobra"
)

// WeekOptions selects how a week is printed.
type WeekOptions struct {
	Layout bool
}

func AddWeekArgs(cmd *cobra.Command, o *WeekOptions) {
	cmd.Flags().BoolVarP(&o.Layout, "layout", "l", false,
		"Print the computed column layout instead of the agenda.")
}
