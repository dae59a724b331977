// Package theme centralizes the Lip Gloss styles of the interface around the
// week grid.
package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

// Theme styles the title bar, the footer and the naming prompt.
type Theme struct {
	Title  lipgloss.Style
	Footer FooterTheme
	Input  InputTheme
}

// FooterTheme groups styles used by the bottom status and help line.
type FooterTheme struct {
	Status    lipgloss.Style
	Help      lipgloss.Style
	Separator string
}

// InputTheme styles the prompt shown while a new task is named.
type InputTheme struct {
	Cursor color.Color
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true),
		Footer: FooterTheme{
			Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Separator: " • ",
		},
		Input: InputTheme{
			Cursor: lipgloss.Color("218"),
		},
	}
}
