package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mediadto "pomo/internal/modules/media/dto"
	settingsdto "pomo/internal/modules/settings/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/components"
	"pomo/internal/ui/theme"
	musicview "pomo/internal/ui/views/music"
	timerview "pomo/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type timerPort interface {
	Toggle(ctx context.Context) (timerdto.StateOutput, error)
	Reset(ctx context.Context) (timerdto.StateOutput, error)
	SetMode(ctx context.Context, mode string) (timerdto.StateOutput, error)
	Skip(ctx context.Context) (timerdto.StateOutput, error)
	UpdateDurations(ctx context.Context, input timerdto.DurationsInput) (timerdto.StateOutput, error)
	UpdatePolicy(ctx context.Context, input timerdto.PolicyInput) error
	State(ctx context.Context) (timerdto.StateOutput, error)
	Subscribe(ctx context.Context) (<-chan timerdto.StateOutput, func())
}

type mediaPort interface {
	OnStateChange(ctx context.Context, input mediadto.StateInput) (mediadto.StatusOutput, error)
	SetVolume(ctx context.Context, percent int) (mediadto.StatusOutput, error)
	ToggleMute(ctx context.Context) (mediadto.StatusOutput, error)
	Status() mediadto.StatusOutput
}

type settingsPort interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error)
	Subscribe(ctx context.Context) (<-chan settingsdto.SettingsOutput, func())
}

const volumeStep = 5

// ─── async messages ───────────────────────────────────────────────────────────

type stateMsg struct {
	state timerdto.StateOutput
	ok    bool
}

type timerResultMsg struct {
	state timerdto.StateOutput
	err   error
}

type settingsMsg struct {
	settings settingsdto.SettingsOutput
	ok       bool
}

type settingsLoadedMsg struct {
	settings settingsdto.SettingsOutput
	err      error
}

type settingsSavedMsg struct {
	settings settingsdto.SettingsOutput
	note     string
	err      error
}

type mediaMsg struct {
	status mediadto.StatusOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Skip    key.Binding
	Work    key.Binding
	Short   key.Binding
	Long    key.Binding
	Mute    key.Binding
	VolUp   key.Binding
	VolDown key.Binding
	Theme   key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		Work:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus")),
		Short:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		Long:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		Mute:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		VolUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "volume")),
		VolDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("+/-", "volume")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip},
		{k.Work, k.Short, k.Long},
		{k.Mute, k.VolUp, k.Theme},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It forwards every timer snapshot to the
// media port together with the current music settings, keeps the terminal
// title in step with the countdown and persists user changes via settings.
type Model struct {
	ctx context.Context

	timer    timerPort
	media    mediaPort
	settings settingsPort

	states      <-chan timerdto.StateOutput
	settingsCh  <-chan settingsdto.SettingsOutput
	unsubscribe []func()

	timerView timerview.Model
	musicView musicview.Model

	state       timerdto.StateOutput
	current     settingsdto.SettingsOutput
	hasSettings bool
	mediaStatus mediadto.StatusOutput

	styles   theme.Styles
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel subscribes to timer and settings updates for the lifetime of ctx.
func NewModel(ctx context.Context, timer timerPort, media mediaPort, settings settingsPort) Model {
	styles := theme.NewStyles(theme.Get(theme.DefaultName))
	states, stopStates := timer.Subscribe(ctx)
	settingsCh, stopSettings := settings.Subscribe(ctx)
	musicV := musicview.New(styles)
	mediaStatus := media.Status()
	musicV.SetStatus(mediaStatus)
	return Model{
		ctx:         ctx,
		timer:       timer,
		media:       media,
		settings:    settings,
		states:      states,
		settingsCh:  settingsCh,
		unsubscribe: []func(){stopStates, stopSettings},
		timerView:   timerview.New(styles),
		musicView:   musicV,
		mediaStatus: mediaStatus,
		styles:      styles,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(styles),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSettingsCmd(),
		waitForState(m.states),
		waitForSettings(m.settingsCh),
	)
}

// Close releases the subscriptions taken in NewModel.
func (m Model) Close() {
	for _, stop := range m.unsubscribe {
		stop()
	}
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if !msg.ok {
			return m, nil
		}
		return m, tea.Batch(m.applyState(msg.state), waitForState(m.states))

	case timerResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case settingsLoadedMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
			return m, nil
		}
		return m, m.applySettings(msg.settings)

	case settingsMsg:
		if !msg.ok {
			return m, nil
		}
		return m, tea.Batch(m.applySettings(msg.settings), waitForSettings(m.settingsCh))

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.note != "" {
			m.status = msg.note
		}
		return m, m.applySettings(msg.settings)

	case mediaMsg:
		m.mediaStatus = msg.status
		m.musicView.SetStatus(msg.status)
		if msg.err != nil {
			m.status = "music: " + msg.err.Error()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.timerView.SetWidth(m.width)
		m.musicView.SetWidth(m.width)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Palette):
		return m, m.palette.Open()
	case key.Matches(msg, m.keys.Toggle):
		return m, m.timerCmd(m.timer.Toggle)
	case key.Matches(msg, m.keys.Reset):
		return m, m.timerCmd(m.timer.Reset)
	case key.Matches(msg, m.keys.Skip):
		return m, m.timerCmd(m.timer.Skip)
	case key.Matches(msg, m.keys.Work):
		return m, m.setModeCmd("work")
	case key.Matches(msg, m.keys.Short):
		return m, m.setModeCmd("shortBreak")
	case key.Matches(msg, m.keys.Long):
		return m, m.setModeCmd("longBreak")
	case key.Matches(msg, m.keys.Mute):
		return m, m.toggleMuteCmd()
	case key.Matches(msg, m.keys.VolUp):
		return m, m.volumeCmd(m.mediaStatus.Volume + volumeStep)
	case key.Matches(msg, m.keys.VolDown):
		return m, m.volumeCmd(m.mediaStatus.Volume - volumeStep)
	case key.Matches(msg, m.keys.Theme):
		next := theme.Next(m.current.Theme)
		return m, m.saveSettingsCmd(settingsdto.UpdateInput{Theme: &next}, "theme: "+next)
	}
	return m, nil
}

// applyState records a snapshot and forwards it to the media port.
func (m *Model) applyState(state timerdto.StateOutput) tea.Cmd {
	m.state = state
	m.timerView.SetState(state)
	if state.Completed != nil {
		verb := "complete"
		if state.Completed.Skipped {
			verb = "skipped"
		}
		m.status = fmt.Sprintf("%s %s, next: %s", modeLabel(state.Completed.From), verb, state.ModeLabel)
	}
	return tea.Batch(tea.SetWindowTitle(state.Title), m.syncMediaCmd(state))
}

// applySettings pushes changed durations and policy into the timer and
// re-applies media so a new track or volume takes effect immediately.
func (m *Model) applySettings(next settingsdto.SettingsOutput) tea.Cmd {
	prev := m.current
	first := !m.hasSettings
	m.current = next
	m.hasSettings = true

	if first || prev.Theme != next.Theme {
		m.applyTheme(next.Theme)
	}
	m.timerView.SetInterval(next.LongBreakInterval)

	var cmds []tea.Cmd
	if first || durationsOf(prev) != durationsOf(next) {
		cmds = append(cmds, m.updateDurationsCmd(durationsOf(next)))
	}
	if first || prev.AutoStartBreaks != next.AutoStartBreaks || prev.AutoStartWork != next.AutoStartWork {
		cmds = append(cmds, m.updatePolicyCmd(timerdto.PolicyInput{AutoStartBreaks: next.AutoStartBreaks, AutoStartWork: next.AutoStartWork}))
	}
	if prev.FocusMusic != next.FocusMusic || prev.BreakMusic != next.BreakMusic {
		cmds = append(cmds, m.syncMediaCmd(m.state))
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyTheme(name string) {
	m.styles = theme.NewStyles(theme.Get(name))
	m.timerView.SetStyles(m.styles)
	m.musicView.SetStyles(m.styles)
	m.palette.SetStyles(m.styles)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			components.Boundary("timer", m.timerView.View),
			components.Boundary("music", m.musicView.View),
		)
	}
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar))
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("pomo")
	right := m.styles.Muted.Render("theme " + m.styles.Palette.Name)
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(right)-4, 1)
	return title + strings.Repeat(" ", gap) + right + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.styles.Muted.Render("?:help  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 1)
	return "\n" + m.styles.Bar.Render(left+strings.Repeat(" ", gap)+right)
}

// ─── async commands ───────────────────────────────────────────────────────────

func waitForState(ch <-chan timerdto.StateOutput) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		return stateMsg{state: state, ok: ok}
	}
}

func waitForSettings(ch <-chan settingsdto.SettingsOutput) tea.Cmd {
	return func() tea.Msg {
		settings, ok := <-ch
		return settingsMsg{settings: settings, ok: ok}
	}
}

func (m Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		settings, err := m.settings.Get(m.ctx)
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

func (m Model) saveSettingsCmd(input settingsdto.UpdateInput, note string) tea.Cmd {
	return func() tea.Msg {
		settings, err := m.settings.Update(m.ctx, input)
		return settingsSavedMsg{settings: settings, note: note, err: err}
	}
}

// timerCmd runs a timer command. The resulting state arrives through the
// subscription, so only errors are reported here.
func (m Model) timerCmd(fn func(context.Context) (timerdto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(m.ctx)
		return timerResultMsg{state: state, err: err}
	}
}

func (m Model) setModeCmd(mode string) tea.Cmd {
	return m.timerCmd(func(ctx context.Context) (timerdto.StateOutput, error) {
		return m.timer.SetMode(ctx, mode)
	})
}

func (m Model) updateDurationsCmd(input timerdto.DurationsInput) tea.Cmd {
	return m.timerCmd(func(ctx context.Context) (timerdto.StateOutput, error) {
		return m.timer.UpdateDurations(ctx, input)
	})
}

func (m Model) updatePolicyCmd(input timerdto.PolicyInput) tea.Cmd {
	return func() tea.Msg {
		return timerResultMsg{err: m.timer.UpdatePolicy(m.ctx, input)}
	}
}

func (m Model) syncMediaCmd(state timerdto.StateOutput) tea.Cmd {
	if !m.hasSettings || state.Mode == "" {
		return nil
	}
	input := mediadto.StateInput{
		Seq:     state.Seq,
		Mode:    state.Mode,
		Running: state.Running,
		Focus:   musicInput(m.current.FocusMusic),
		Break:   musicInput(m.current.BreakMusic),
	}
	return func() tea.Msg {
		status, err := m.media.OnStateChange(m.ctx, input)
		return mediaMsg{status: status, err: err}
	}
}

func (m Model) toggleMuteCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.media.ToggleMute(m.ctx)
		return mediaMsg{status: status, err: err}
	}
}

// volumeCmd applies the volume right away and stores it for the active class.
func (m Model) volumeCmd(percent int) tea.Cmd {
	percent = max(0, min(percent, 100))
	class := m.mediaStatus.Class
	if class == "" {
		class = "focus"
	}
	update := settingsdto.UpdateInput{}
	if class == "break" {
		update.BreakMusic = &settingsdto.MusicInput{Volume: &percent}
	} else {
		update.FocusMusic = &settingsdto.MusicInput{Volume: &percent}
	}
	apply := func() tea.Msg {
		status, err := m.media.SetVolume(m.ctx, percent)
		return mediaMsg{status: status, err: err}
	}
	return tea.Sequence(apply, m.saveSettingsCmd(update, fmt.Sprintf("volume %d%%", percent)))
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func durationsOf(s settingsdto.SettingsOutput) timerdto.DurationsInput {
	return timerdto.DurationsInput{
		WorkMinutes:       s.WorkMinutes,
		ShortBreakMinutes: s.ShortBreakMinutes,
		LongBreakMinutes:  s.LongBreakMinutes,
		LongBreakInterval: s.LongBreakInterval,
	}
}

func musicInput(m settingsdto.MusicOutput) mediadto.ConfigInput {
	return mediadto.ConfigInput{Kind: m.Kind, Reference: m.Reference, Volume: m.Volume}
}

func modeLabel(mode string) string {
	switch mode {
	case "shortBreak":
		return "Short Break"
	case "longBreak":
		return "Long Break"
	default:
		return "Focus"
	}
}
