package timer_test

import (
	"strings"
	"testing"

	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/theme"
	"pomo/internal/ui/views/timer"
)

func TestElapsedFraction(t *testing.T) {
	t.Parallel()
	m := timer.New(theme.NewStyles(theme.Get("dark")))
	if m.Elapsed() != 0 {
		t.Fatalf("empty state should have no progress")
	}
	m.SetState(timerdto.StateOutput{Mode: "work", SecondsRemaining: 750, TotalSeconds: 1500})
	if got := m.Elapsed(); got != 0.5 {
		t.Fatalf("expected half elapsed, got %v", got)
	}
}

func TestViewShowsClockAndMode(t *testing.T) {
	t.Parallel()
	m := timer.New(theme.NewStyles(theme.Get("nord")))
	m.SetWidth(80)
	m.SetState(timerdto.StateOutput{Mode: "shortBreak", ModeLabel: "Short Break", Clock: "04:59", SecondsRemaining: 299, TotalSeconds: 300, CompletedWorkCycles: 1})
	view := m.View()
	for _, want := range []string{"0 4 : 5 9", "Short Break", "paused"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
