package usecase

import (
	"context"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/modules/timer/service"
)

type Interactor struct {
	svc *service.TimerService
}

func NewInteractor(svc *service.TimerService) timerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(_ context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Start()), nil
}

func (i *Interactor) Pause(_ context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Pause()), nil
}

func (i *Interactor) Toggle(_ context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Toggle()), nil
}

func (i *Interactor) Reset(_ context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Reset()), nil
}

func (i *Interactor) SetMode(_ context.Context, raw string) (dto.StateOutput, error) {
	mode, err := domain.ParseMode(raw)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(i.svc.SetMode(mode)), nil
}

func (i *Interactor) Skip(ctx context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Skip(ctx)), nil
}

func (i *Interactor) UpdateDurations(_ context.Context, input dto.DurationsInput) (dto.StateOutput, error) {
	durations := domain.Durations{
		WorkMinutes:       input.WorkMinutes,
		ShortBreakMinutes: input.ShortBreakMinutes,
		LongBreakMinutes:  input.LongBreakMinutes,
		LongBreakInterval: input.LongBreakInterval,
	}
	if err := durations.Validate(); err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(i.svc.UpdateDurations(durations)), nil
}

func (i *Interactor) UpdatePolicy(_ context.Context, input dto.PolicyInput) error {
	i.svc.SetPolicy(service.Policy{AutoStartBreaks: input.AutoStartBreaks, AutoStartWork: input.AutoStartWork})
	return nil
}

func (i *Interactor) State(_ context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Snapshot()), nil
}

// Subscribe converts the service's snapshot stream into DTOs. The output
// channel keeps only the newest state, like the source channel.
func (i *Interactor) Subscribe(ctx context.Context) (<-chan dto.StateOutput, func()) {
	src, cancel := i.svc.Subscribe()
	out := make(chan dto.StateOutput, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case snap, ok := <-src:
				if !ok {
					return
				}
				state := toOutput(snap)
				select {
				case out <- state:
				default:
					select {
					case <-out:
					default:
					}
					out <- state
				}
			}
		}
	}()
	return out, cancel
}

func (i *Interactor) Close() error {
	i.svc.Close()
	return nil
}

func toOutput(snap domain.Snapshot) dto.StateOutput {
	out := dto.StateOutput{
		Mode:                string(snap.State.Mode),
		ModeLabel:           snap.State.Mode.Label(),
		SecondsRemaining:    snap.State.SecondsRemaining,
		TotalSeconds:        snap.TotalSeconds,
		Clock:               domain.Clock(snap.State.SecondsRemaining),
		Title:               domain.Title(snap.State.SecondsRemaining),
		Running:             snap.State.Running,
		CompletedWorkCycles: snap.State.CompletedWorkCycles,
		Seq:                 snap.Seq,
	}
	if snap.Transition != nil {
		out.Completed = &dto.TransitionOutput{
			From:                string(snap.Transition.From),
			To:                  string(snap.Transition.To),
			CompletedWorkCycles: snap.Transition.CompletedWorkCycles,
			Skipped:             snap.Transition.Skipped,
		}
	}
	return out
}
