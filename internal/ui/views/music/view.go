package music

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	mediadto "pomo/internal/modules/media/dto"
	"pomo/internal/ui/theme"
)

// Model shows what background media is selected and how it is playing.
type Model struct {
	status mediadto.StatusOutput
	volume progress.Model
	styles theme.Styles
	width  int
}

func New(styles theme.Styles) Model {
	m := Model{volume: progress.New(progress.WithoutPercentage())}
	m.volume.Width = 20
	m.SetStyles(styles)
	return m
}

func (m *Model) SetStatus(status mediadto.StatusOutput) { m.status = status }

func (m *Model) SetWidth(w int) { m.width = w }

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
	m.volume.FullColor = string(styles.Palette.Accent)
	m.volume.EmptyColor = string(styles.Palette.Surface)
}

func (m Model) View() string {
	class := m.status.Class
	if class == "" {
		class = "focus"
	}
	title := m.styles.Title.Render("♪ " + strings.ToUpper(class[:1]) + class[1:] + " music")

	state := "stopped"
	switch {
	case m.status.Muted:
		state = "muted"
	case m.status.Playing:
		state = "playing"
	}

	lines := []string{
		title,
		m.styles.Muted.Render("source  ") + describe(m.status),
		m.styles.Muted.Render("state   ") + state,
		m.styles.Muted.Render("volume  ") + m.volume.ViewAs(float64(m.status.Volume)/100) + fmt.Sprintf(" %3d%%", m.status.Volume),
	}
	if m.status.LastError != "" {
		lines = append(lines, m.styles.Warn.Render("! "+m.status.LastError))
	}
	return m.styles.Pane.Width(max(m.width-4, 30)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func describe(status mediadto.StatusOutput) string {
	switch {
	case status.Reference == "":
		return "bundled track"
	case status.Kind == "video":
		return "video " + status.Reference
	case status.Fallback:
		return "bundled " + filepath.Base(status.Reference)
	default:
		return filepath.Base(status.Reference)
	}
}
