package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/timeutil"
)

// TimeOptions is a start time with either an end time or a length.
type TimeOptions struct {
	Start string
	End   string
	For   string
}

func AddTimeArgs(cmd *cobra.Command, o *TimeOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "", `Start time, example: --start=09:30.`)
	cmd.Flags().StringVar(&o.End, "end", "", `End time, example: --end=11:00.`)
	cmd.Flags().StringVar(&o.For, "for", "", `Length instead of an end time, example: --for=1h30m.`)
}

// Resolve returns the start and end clocks. Both are empty when no flag was
// given.
func (o *TimeOptions) Resolve() (string, string, error) {
	start, end, span := strings.TrimSpace(o.Start), strings.TrimSpace(o.End), strings.TrimSpace(o.For)
	switch {
	case start == "" && end == "" && span == "":
		return "", "", nil
	case end != "" && span != "":
		return "", "", errors.New("use either --end or --for, not both")
	case start == "":
		return "", "", errors.New("--start is required with --end or --for")
	case span != "":
		minutes, err := timeutil.ParseSpan(span)
		if err != nil {
			return "", "", err
		}
		end, err = app.EndAfter(start, minutes)
		return start, end, err
	case end == "":
		return "", "", errors.New("--end or --for is required with --start")
	}
	return start, end, nil
}
