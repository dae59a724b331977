// Package ui starts the interactive week grid.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/weekplan/pkg/app"
	teaui "tableflip.dev/weekplan/pkg/tui/app"
)

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("ui: needs an interactive terminal")

type UI struct {
	Service *app.Service
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("ui: no service")
	}
	if !terminal(os.Stdin) || !terminal(os.Stdout) {
		return ErrNoTerminal
	}
	return teaui.Run(d.Service)
}

func terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
