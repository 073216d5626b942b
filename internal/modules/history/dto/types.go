package dto

import "time"

type RecordInput struct {
	Mode                string
	PlannedSeconds      int
	Outcome             string
	EndedAt             time.Time
	CompletedWorkCycles int
}

type IntervalOutput struct {
	ID                  string
	Mode                string
	PlannedSeconds      int
	Outcome             string
	EndedAt             time.Time
	CompletedWorkCycles int
}

type SummaryOutput struct {
	Day             time.Time
	CompletedWork   int
	CompletedBreaks int
	Skipped         int
	FocusMinutes    int
}
