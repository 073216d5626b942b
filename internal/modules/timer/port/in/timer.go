package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Toggle(ctx context.Context) (dto.StateOutput, error)
	Reset(ctx context.Context) (dto.StateOutput, error)
	SetMode(ctx context.Context, mode string) (dto.StateOutput, error)
	Skip(ctx context.Context) (dto.StateOutput, error)
	UpdateDurations(ctx context.Context, input dto.DurationsInput) (dto.StateOutput, error)
	UpdatePolicy(ctx context.Context, input dto.PolicyInput) error
	State(ctx context.Context) (dto.StateOutput, error)
	Subscribe(ctx context.Context) (<-chan dto.StateOutput, func())
	Close() error
}
