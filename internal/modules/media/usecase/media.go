package usecase

import (
	"context"
	"strings"

	"pomo/internal/modules/media/domain"
	"pomo/internal/modules/media/dto"
	mediain "pomo/internal/modules/media/port/in"
	"pomo/internal/modules/media/service"
)

type Interactor struct {
	svc *service.SyncService
}

func NewInteractor(svc *service.SyncService) mediain.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OnStateChange(ctx context.Context, input dto.StateInput) (dto.StatusOutput, error) {
	status, err := i.svc.OnStateChange(ctx, service.State{
		Seq:     input.Seq,
		Mode:    input.Mode,
		Running: input.Running,
		Focus:   toConfig(input.Focus),
		Break:   toConfig(input.Break),
	})
	return toOutput(status), err
}

func (i *Interactor) SetVolume(ctx context.Context, percent int) (dto.StatusOutput, error) {
	status, err := i.svc.SetVolume(ctx, percent)
	return toOutput(status), err
}

func (i *Interactor) ToggleMute(ctx context.Context) (dto.StatusOutput, error) {
	status, err := i.svc.ToggleMute(ctx)
	return toOutput(status), err
}

func (i *Interactor) Status() dto.StatusOutput {
	return toOutput(i.svc.Status())
}

func (i *Interactor) PlayAlarm(ctx context.Context, reference string) error {
	return i.svc.PlayAlarm(ctx, reference)
}

func (i *Interactor) Close(ctx context.Context) error {
	return i.svc.Close(ctx)
}

func toConfig(in dto.ConfigInput) domain.Config {
	kind := domain.KindLocal
	if strings.EqualFold(strings.TrimSpace(in.Kind), string(domain.KindVideo)) {
		kind = domain.KindVideo
	}
	return domain.Config{Kind: kind, Reference: in.Reference, Volume: in.Volume}
}

func toOutput(status service.Status) dto.StatusOutput {
	out := dto.StatusOutput{
		Class:     string(status.Class),
		Kind:      string(status.Source.Kind),
		Reference: status.Source.Location,
		Volume:    status.Volume,
		Muted:     status.Muted,
		Playing:   status.Playing,
		Fallback:  status.Source.Fallback,
	}
	if status.LastError != nil {
		out.LastError = status.LastError.Error()
	}
	return out
}
