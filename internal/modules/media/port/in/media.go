package in

import (
	"context"

	"pomo/internal/modules/media/dto"
)

type Usecase interface {
	OnStateChange(ctx context.Context, input dto.StateInput) (dto.StatusOutput, error)
	SetVolume(ctx context.Context, percent int) (dto.StatusOutput, error)
	ToggleMute(ctx context.Context) (dto.StatusOutput, error)
	Status() dto.StatusOutput
	PlayAlarm(ctx context.Context, reference string) error
	Close(ctx context.Context) error
}
