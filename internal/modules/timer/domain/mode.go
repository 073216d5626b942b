package domain

import (
	"fmt"
	"strings"

	apperrors "pomo/internal/platform/errors"
)

// Mode is one of the three timer phases.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

var Modes = []Mode{ModeWork, ModeShortBreak, ModeLongBreak}

func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "work", "focus":
		return ModeWork, nil
	case "shortbreak", "short_break", "short":
		return ModeShortBreak, nil
	case "longbreak", "long_break", "long":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, raw)
}

func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}
