package out

import (
	"context"

	historydto "pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/timer/dto"
	timerout "pomo/internal/modules/timer/port/out"
)

type HistoryRecorder struct {
	history historyin.Usecase
}

func NewHistoryRecorder(history historyin.Usecase) timerout.IntervalRecorder {
	return &HistoryRecorder{history: history}
}

func (r *HistoryRecorder) Record(ctx context.Context, record dto.IntervalRecord) error {
	_, err := r.history.Record(ctx, historydto.RecordInput{
		Mode:                record.Mode,
		PlannedSeconds:      record.PlannedSeconds,
		Outcome:             record.Outcome,
		EndedAt:             record.EndedAt,
		CompletedWorkCycles: record.CompletedWorkCycles,
	})
	return err
}
