package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the rendered styles of one palette.
type Styles struct {
	Palette Palette

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Warn       lipgloss.Style
	Bar        lipgloss.Style
	Overlay    lipgloss.Style
}

func NewStyles(p Palette) Styles {
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Background(p.Mantle).
		Foreground(p.Text).
		Padding(1)

	return Styles{
		Palette: p,
		App: lipgloss.NewStyle().
			Background(p.Base).
			Foreground(p.Text).
			Padding(1, 2),
		Pane:       pane,
		PaneActive: pane.BorderForeground(p.Accent),
		Title:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(p.Subtext),
		Hot:        lipgloss.NewStyle().Foreground(p.Focus).Bold(true),
		Warn:       lipgloss.NewStyle().Foreground(p.Warn),
		Bar:        lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Text),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Warn).
			Background(p.Mantle).
			Foreground(p.Text).
			Padding(0, 1),
	}
}

// ModeColor is the accent of a timer mode.
func (s Styles) ModeColor(breakMode bool) lipgloss.Color {
	if breakMode {
		return s.Palette.Break
	}
	return s.Palette.Focus
}
