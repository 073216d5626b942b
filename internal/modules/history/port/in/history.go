package in

import (
	"context"
	"time"

	"pomo/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.IntervalOutput, error)
	List(ctx context.Context, limit int) ([]dto.IntervalOutput, error)
	Summary(ctx context.Context, day time.Time) (dto.SummaryOutput, error)
}
