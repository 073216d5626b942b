package usecase

import (
	"context"
	"time"

	"pomo/internal/modules/history/domain"
	"pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.IntervalOutput, error) {
	recorded, err := i.svc.Record(ctx, domain.Interval{
		Mode:                input.Mode,
		PlannedSeconds:      input.PlannedSeconds,
		Outcome:             domain.Outcome(input.Outcome),
		EndedAt:             input.EndedAt,
		CompletedWorkCycles: input.CompletedWorkCycles,
	})
	if err != nil {
		return dto.IntervalOutput{}, err
	}
	return toOutput(recorded), nil
}

func (i *Interactor) List(ctx context.Context, limit int) ([]dto.IntervalOutput, error) {
	intervals, err := i.svc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntervalOutput, 0, len(intervals))
	for _, interval := range intervals {
		out = append(out, toOutput(interval))
	}
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context, day time.Time) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx, day)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Day:             summary.Day,
		CompletedWork:   summary.CompletedWork,
		CompletedBreaks: summary.CompletedBreaks,
		Skipped:         summary.Skipped,
		FocusMinutes:    summary.FocusMinutes,
	}, nil
}

func toOutput(interval domain.Interval) dto.IntervalOutput {
	return dto.IntervalOutput{
		ID:                  interval.ID,
		Mode:                interval.Mode,
		PlannedSeconds:      interval.PlannedSeconds,
		Outcome:             string(interval.Outcome),
		EndedAt:             interval.EndedAt,
		CompletedWorkCycles: interval.CompletedWorkCycles,
	}
}
