package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// paletteHints must stay in sync with the switch in app/palette.go.
var paletteHints = []string{
	"mode <work|short|long>",
	"durations <work> <short> <long> <interval>",
	"volume <0-100>",
	"music <focus|break> <local|video> [reference]",
	"theme <name>",
	"autostart <breaks|work> <on|off>",
	"skip",
	"reset",
	"mute",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	styles  theme.Styles
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette(styles theme.Styles) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti, styles: styles}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) SetStyles(styles theme.Styles) { p.styles = styles }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "tab":
			// Complete the command word when exactly one command matches.
			if hints := matchingHints(p.input.Value()); len(hints) == 1 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(strings.Fields(hints[0])[0] + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := matchingHints(p.input.Value())
	if len(matching) > 5 {
		matching = matching[:5]
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(p.styles.Muted.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return p.styles.Overlay.Width(w - 2).Render(sb.String())
}

// matchingHints filters on the command word only, so the usage line stays
// visible while arguments are typed.
func matchingHints(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return paletteHints
	}
	typingArgs := strings.HasSuffix(input, " ") || len(fields) > 1
	var out []string
	for _, h := range paletteHints {
		command := strings.Fields(h)[0]
		if command == fields[0] || (!typingArgs && strings.HasPrefix(command, fields[0])) {
			out = append(out, h)
		}
	}
	return out
}
