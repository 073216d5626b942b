package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/ui/theme"
)

func TestMatchingHintsFiltersOnCommandWord(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input string
		want  []string
	}{
		{input: "", want: paletteHints},
		{input: "m", want: []string{"mode <work|short|long>", "music <focus|break> <local|video> [reference]", "mute"}},
		{input: "mu", want: []string{"music <focus|break> <local|video> [reference]", "mute"}},
		{input: "durations 25 5", want: []string{"durations <work> <short> <long> <interval>"}},
		{input: "mu ", want: nil},
	}
	for _, tc := range cases {
		got := matchingHints(tc.input)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Fatalf("matchingHints(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTabCompletesUniqueCommand(t *testing.T) {
	t.Parallel()
	p := NewPalette(theme.NewStyles(theme.Get(theme.DefaultName)))
	p.Open()
	p.input.SetValue("dur")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "durations " {
		t.Fatalf("expected completion, got %q", got)
	}

	p.input.SetValue("m")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "m" {
		t.Fatalf("ambiguous prefix must not complete, got %q", got)
	}
}

func TestSubmitTrimsInputAndCloses(t *testing.T) {
	t.Parallel()
	p := NewPalette(theme.NewStyles(theme.Get(theme.DefaultName)))
	p.Open()
	p.input.SetValue("  skip ")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "skip" {
		t.Fatalf("unexpected submit message: %#v", msg)
	}
}
