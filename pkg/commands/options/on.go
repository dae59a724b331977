package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/weekplan/pkg/task"
)

const layoutISOShort = "1/2"

// OnOptions picks a day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-10-14", --on="10/14" or --on=tomorrow. Defaults to today.`)
}

// GetOn resolves the flag against now. A short month/day date keeps the
// current year.
func (o *OnOptions) GetOn(now time.Time) (task.Date, error) {
	today := task.DateOf(now)
	switch s := strings.ToLower(strings.TrimSpace(o.OnString)); s {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	default:
		if d, err := task.ParseDate(s); err == nil {
			return d, nil
		}
		t, err := time.Parse(layoutISOShort, s)
		if err != nil {
			return task.Date{}, fmt.Errorf("invalid date %q", o.OnString)
		}
		return task.Date{Year: today.Year, Month: t.Month(), Day: t.Day()}, nil
	}
}
