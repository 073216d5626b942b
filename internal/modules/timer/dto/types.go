package dto

import "time"

type StateOutput struct {
	Mode                string
	ModeLabel           string
	SecondsRemaining    int
	TotalSeconds        int
	Clock               string
	Title               string
	Running             bool
	CompletedWorkCycles int
	Seq                 uint64
	Completed           *TransitionOutput
}

type TransitionOutput struct {
	From                string
	To                  string
	CompletedWorkCycles int
	Skipped             bool
}

type DurationsInput struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

type PolicyInput struct {
	AutoStartBreaks bool
	AutoStartWork   bool
}

// IntervalRecord is handed to the history recorder when an interval ends.
type IntervalRecord struct {
	Mode                string
	PlannedSeconds      int
	Outcome             string
	EndedAt             time.Time
	CompletedWorkCycles int
}
