package domain

import (
	"fmt"

	apperrors "pomo/internal/platform/errors"
)

const (
	DefaultWorkMinutes       = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultLongBreakInterval = 4
)

// Durations is the read-only duration configuration the engine recomputes
// into seconds.
type Durations struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

func DefaultDurations() Durations {
	return Durations{
		WorkMinutes:       DefaultWorkMinutes,
		ShortBreakMinutes: DefaultShortBreakMinutes,
		LongBreakMinutes:  DefaultLongBreakMinutes,
		LongBreakInterval: DefaultLongBreakInterval,
	}
}

func (d Durations) Seconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return d.ShortBreakMinutes * 60
	case ModeLongBreak:
		return d.LongBreakMinutes * 60
	default:
		return d.WorkMinutes * 60
	}
}

// Validate is the caller-side check; the engine itself accepts any values.
func (d Durations) Validate() error {
	if d.WorkMinutes <= 0 || d.ShortBreakMinutes <= 0 || d.LongBreakMinutes <= 0 {
		return fmt.Errorf("%w: durations must be positive", apperrors.ErrInvalidInput)
	}
	if d.LongBreakInterval <= 0 {
		return fmt.Errorf("%w: long break interval must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}
