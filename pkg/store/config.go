package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/weekplan/pkg/timeutil"
)

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// CalendarSettings configures publishing to Google Calendar.
type CalendarSettings struct {
	Name        string
	Credentials string
	Token       string
}

// Settings is the resolved configuration of the planner.
type Settings struct {
	Path          string
	WeekStart     time.Weekday
	LayoutPadding float64
	LayoutStagger float64
	Calendar      CalendarSettings
}

func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads `.weekplan` (yaml) from $WEEKPLAN_CONFIG_PATH or the
// working directory, overlaid by WEEKPLAN_* environment variables.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.weekplan.db")
	v.SetDefault("week.start", "monday")
	v.SetDefault("layout.padding", 2.0)
	v.SetDefault("layout.stagger", 0.8)
	v.SetDefault("gcal.calendar", "Planner")
	v.SetDefault("gcal.credentials", "~/.config/weekplan/credentials.json")
	v.SetDefault("gcal.token", "~/.config/weekplan/token.json")

	v.SetConfigName(".weekplan")
	v.SetEnvPrefix("WEEKPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("WEEKPLAN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	start, err := timeutil.ParseWeekday(v.GetString("week.start"))
	if err != nil {
		return nil, fmt.Errorf("store: week.start: %w", err)
	}
	creds, err := homedir.Expand(v.GetString("gcal.credentials"))
	if err != nil {
		return nil, fmt.Errorf("store: expand gcal.credentials: %w", err)
	}
	token, err := homedir.Expand(v.GetString("gcal.token"))
	if err != nil {
		return nil, fmt.Errorf("store: expand gcal.token: %w", err)
	}
	return &Settings{
		Path:          path,
		WeekStart:     start,
		LayoutPadding: v.GetFloat64("layout.padding"),
		LayoutStagger: v.GetFloat64("layout.stagger"),
		Calendar: CalendarSettings{
			Name:        v.GetString("gcal.calendar"),
			Credentials: creds,
			Token:       token,
		},
	}, nil
}
