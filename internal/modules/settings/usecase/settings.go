package usecase

import (
	"context"
	"fmt"

	"pomo/internal/modules/settings/domain"
	"pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	"pomo/internal/modules/settings/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	current, err := i.svc.Current(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(current), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	updated, err := i.svc.Update(ctx, func(s *domain.Settings) error {
		setInt(&s.WorkMinutes, input.WorkMinutes)
		setInt(&s.ShortBreakMinutes, input.ShortBreakMinutes)
		setInt(&s.LongBreakMinutes, input.LongBreakMinutes)
		setInt(&s.LongBreakInterval, input.LongBreakInterval)
		if err := applyMusic(&s.FocusMusic, input.FocusMusic); err != nil {
			return err
		}
		if err := applyMusic(&s.BreakMusic, input.BreakMusic); err != nil {
			return err
		}
		if input.Theme != nil {
			if !domain.IsTheme(*input.Theme) {
				return fmt.Errorf("%w: unknown theme %q", apperrors.ErrInvalidInput, *input.Theme)
			}
			s.Theme = *input.Theme
		}
		if input.AutoStartBreaks != nil {
			s.AutoStartBreaks = *input.AutoStartBreaks
		}
		if input.AutoStartWork != nil {
			s.AutoStartWork = *input.AutoStartWork
		}
		return nil
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(updated), nil
}

func (i *Interactor) Set(ctx context.Context, key, value string) (dto.SettingsOutput, error) {
	updated, err := i.svc.Update(ctx, func(s *domain.Settings) error {
		return s.Set(key, value)
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(updated), nil
}

func (i *Interactor) Value(ctx context.Context, key string) (string, error) {
	current, err := i.svc.Current(ctx)
	if err != nil {
		return "", err
	}
	return current.Value(key)
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	current, err := i.svc.Current(ctx)
	if err != nil {
		return nil, err
	}
	keys := domain.Keys()
	out := make([]dto.EntryOutput, 0, len(keys))
	for _, key := range keys {
		value, err := current.Value(key)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.EntryOutput{Key: key, Value: value})
	}
	return out, nil
}

func (i *Interactor) Keys() []string {
	return domain.Keys()
}

func (i *Interactor) Reload(ctx context.Context) error {
	_, err := i.svc.Reload(ctx)
	return err
}

func (i *Interactor) Watch(ctx context.Context) error {
	return i.svc.Watch(ctx)
}

func (i *Interactor) Subscribe(ctx context.Context) (<-chan dto.SettingsOutput, func()) {
	src, cancel := i.svc.Subscribe()
	out := make(chan dto.SettingsOutput, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case s, ok := <-src:
				if !ok {
					return
				}
				select {
				case out <- toOutput(s):
				case <-ctx.Done():
					cancel()
					return
				}
			}
		}
	}()
	return out, cancel
}

func (i *Interactor) Path() string {
	return i.svc.Path()
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyMusic(dst *domain.Music, input *dto.MusicInput) error {
	if input == nil {
		return nil
	}
	if input.Kind != nil {
		kind, err := domain.ParseMediaKind(*input.Kind)
		if err != nil {
			return err
		}
		dst.Kind = kind
	}
	if input.Reference != nil {
		dst.Reference = *input.Reference
	}
	if input.Volume != nil {
		dst.Volume = *input.Volume
	}
	return nil
}

func toOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		WorkMinutes:       s.WorkMinutes,
		ShortBreakMinutes: s.ShortBreakMinutes,
		LongBreakMinutes:  s.LongBreakMinutes,
		LongBreakInterval: s.LongBreakInterval,
		FocusMusic:        musicOutput(s.FocusMusic),
		BreakMusic:        musicOutput(s.BreakMusic),
		WorkAlarm:         s.WorkAlarm,
		ShortBreakAlarm:   s.ShortBreakAlarm,
		LongBreakAlarm:    s.LongBreakAlarm,
		Theme:             s.Theme,
		AutoStartBreaks:   s.AutoStartBreaks,
		AutoStartWork:     s.AutoStartWork,
	}
}

func musicOutput(m domain.Music) dto.MusicOutput {
	return dto.MusicOutput{Kind: string(m.Kind), Reference: m.Reference, Volume: m.Volume}
}
