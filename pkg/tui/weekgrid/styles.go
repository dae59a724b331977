package weekgrid

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles groups the lipgloss styles of the grid.
type Styles struct {
	Header    lipgloss.Style
	Today     lipgloss.Style
	Gutter    lipgloss.Style
	Rule      lipgloss.Style
	Now       lipgloss.Style
	Selection lipgloss.Style
	// Dim is the color completed occurrences fade towards.
	Dim string
}

// DefaultStyles returns the built-in grid styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true),
		Today:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Now:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("#3b4f7a")).Foreground(lipgloss.Color("#ffffff")),
		Dim:       "#303030",
	}
}

var palette = []string{
	"#5f87af", "#87af87", "#af875f", "#af5f87", "#8787d7", "#5fafaf", "#d7875f",
}

// taskColor resolves the background of a task. Invalid or empty colors fall
// back to a palette entry picked by id so a task keeps its color across renders.
func taskColor(id, hex string) colorful.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	c, _ := colorful.Hex(palette[paletteIndex(h.Sum32())])
	return c
}

// paletteIndex reduces in uint32 so the index cannot go negative where int
// is 32 bits wide.
func paletteIndex(sum uint32) int {
	return int(sum % uint32(len(palette)))
}

// entryStyle builds the block style for an occurrence.
func (s Styles) entryStyle(bg colorful.Color, completed, editing, preview bool) lipgloss.Style {
	if completed {
		if dim, err := colorful.Hex(s.Dim); err == nil {
			bg = bg.BlendLab(dim, 0.6).Clamped()
		}
	}
	if preview {
		bg = bg.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.3).Clamped()
	}

	fg := "#ffffff"
	if l, _, _ := bg.Lab(); l > 0.65 {
		fg = "#1c1c1c"
	}
	st := lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(fg))
	switch {
	case completed:
		st = st.Faint(true).Strikethrough(true)
	case editing:
		st = st.Bold(true)
	case preview:
		st = st.Italic(true)
	}
	return st
}
