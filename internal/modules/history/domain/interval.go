package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "pomo/internal/platform/errors"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
)

func (o Outcome) Validate() error {
	switch o {
	case OutcomeCompleted, OutcomeSkipped:
		return nil
	}
	return fmt.Errorf("%w: unknown outcome %q", apperrors.ErrInvalidInput, o)
}

const (
	ModeWork       = "work"
	ModeShortBreak = "shortBreak"
	ModeLongBreak  = "longBreak"
)

// Interval is one finished timer interval.
type Interval struct {
	ID                  string
	Mode                string
	PlannedSeconds      int
	Outcome             Outcome
	EndedAt             time.Time
	CompletedWorkCycles int
}

func (i Interval) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: interval id is required", apperrors.ErrInvalidInput)
	}
	switch i.Mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
	default:
		return fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, i.Mode)
	}
	if i.PlannedSeconds < 0 {
		return fmt.Errorf("%w: planned seconds must not be negative", apperrors.ErrInvalidInput)
	}
	if i.EndedAt.IsZero() {
		return fmt.Errorf("%w: end time is required", apperrors.ErrInvalidInput)
	}
	return i.Outcome.Validate()
}

type Summary struct {
	Day             time.Time
	CompletedWork   int
	CompletedBreaks int
	Skipped         int
	FocusMinutes    int
}

// Summarize folds the intervals that ended on day (in day's location).
func Summarize(day time.Time, intervals []Interval) Summary {
	start := StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	summary := Summary{Day: start}
	for _, interval := range intervals {
		ended := interval.EndedAt.In(start.Location())
		if ended.Before(start) || !ended.Before(end) {
			continue
		}
		if interval.Outcome == OutcomeSkipped {
			summary.Skipped++
			continue
		}
		if interval.Mode == ModeWork {
			summary.CompletedWork++
			summary.FocusMinutes += interval.PlannedSeconds / 60
		} else {
			summary.CompletedBreaks++
		}
	}
	return summary
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
