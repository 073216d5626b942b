package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/theme"
)

var modes = []struct {
	name  string
	label string
	key   string
}{
	{"work", "Focus", "1"},
	{"shortBreak", "Short Break", "2"},
	{"longBreak", "Long Break", "3"},
}

// Model renders the countdown, the mode tabs and interval progress.
type Model struct {
	state    timerdto.StateOutput
	interval int
	bar      progress.Model
	styles   theme.Styles
	width    int
}

func New(styles theme.Styles) Model {
	m := Model{bar: progress.New(progress.WithoutPercentage()), interval: 4}
	m.SetStyles(styles)
	return m
}

func (m *Model) SetState(state timerdto.StateOutput) { m.state = state }

// SetInterval sets how many focus sessions lead to a long break.
func (m *Model) SetInterval(n int) {
	if n > 0 {
		m.interval = n
	}
}

func (m *Model) SetWidth(w int) {
	m.width = w
	m.bar.Width = max(10, min(w-8, 60))
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
	m.applyBarColor()
}

func (m *Model) applyBarColor() {
	color := string(m.styles.ModeColor(m.state.Mode != "" && m.state.Mode != "work"))
	m.bar.FullColor = color
	m.bar.EmptyColor = string(m.styles.Palette.Surface)
}

// Elapsed is the fraction of the current interval that has passed.
func (m Model) Elapsed() float64 {
	if m.state.TotalSeconds <= 0 {
		return 0
	}
	done := float64(m.state.TotalSeconds-m.state.SecondsRemaining) / float64(m.state.TotalSeconds)
	return max(0, min(done, 1))
}

func (m Model) View() string {
	m.applyBarColor()
	accent := m.styles.ModeColor(m.state.Mode != "" && m.state.Mode != "work")

	tabs := make([]string, 0, len(modes))
	for _, mode := range modes {
		label := fmt.Sprintf(" %s %s ", mode.key, mode.label)
		if mode.name == m.state.Mode {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Render(label))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(label))
		}
	}

	clock := m.state.Clock
	if clock == "" {
		clock = "--:--"
	}
	clockLine := lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(1, 0).Render(spaced(clock))

	runState := "paused"
	if m.state.Running {
		runState = "running"
	}
	intoCycle := m.state.CompletedWorkCycles % m.interval
	info := m.styles.Muted.Render(fmt.Sprintf("%s · %s · #%d · %d/%d until long break",
		m.state.ModeLabel, runState, m.state.CompletedWorkCycles+1, intoCycle, m.interval))

	body := lipgloss.JoinVertical(lipgloss.Center,
		strings.Join(tabs, m.styles.Muted.Render("│")),
		clockLine,
		m.bar.ViewAs(m.Elapsed()),
		"",
		info,
	)
	return m.styles.Pane.Width(max(m.width-4, 30)).Align(lipgloss.Center).Render(body)
}

// spaced widens the clock so it reads at a glance.
func spaced(clock string) string {
	return strings.Join(strings.Split(clock, ""), " ")
}
