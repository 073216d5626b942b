package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	"pomo/internal/modules/timer/service"
	"pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	apperrors "pomo/internal/platform/errors"
)

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) clock.Cancel { return func() {} }

func newUsecase() *usecase.Interactor {
	svc := service.NewTimerService(clock.SystemClock{}, idleScheduler{}, domain.DefaultDurations(), nil, nil)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestSetModeRejectsUnknownNames(t *testing.T) {
	t.Parallel()
	uc := newUsecase()
	if _, err := uc.SetMode(context.Background(), "nap"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	out, err := uc.SetMode(context.Background(), "long")
	if err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if out.Mode != "longBreak" || out.ModeLabel != "Long Break" || out.Clock != "15:00" || out.Title != "15:00 - Pomodoro Timer" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestUpdateDurationsValidates(t *testing.T) {
	t.Parallel()
	uc := newUsecase()
	_, err := uc.UpdateDurations(context.Background(), dto.DurationsInput{WorkMinutes: 0, ShortBreakMinutes: 5, LongBreakMinutes: 15, LongBreakInterval: 4})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	out, err := uc.UpdateDurations(context.Background(), dto.DurationsInput{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 20, LongBreakInterval: 3})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.SecondsRemaining != 3000 || out.TotalSeconds != 3000 {
		t.Fatalf("work duration not recomputed: %+v", out)
	}
}

func TestSkipReportsTransition(t *testing.T) {
	t.Parallel()
	uc := newUsecase()
	out, err := uc.Skip(context.Background())
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if out.Completed == nil || out.Completed.From != "work" || out.Completed.To != "shortBreak" || !out.Completed.Skipped {
		t.Fatalf("unexpected transition: %+v", out.Completed)
	}
	if out.CompletedWorkCycles != 1 {
		t.Fatalf("skip counts the work cycle: %d", out.CompletedWorkCycles)
	}
}

func TestSubscribeStopsWithContext(t *testing.T) {
	t.Parallel()
	uc := newUsecase()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := uc.Subscribe(ctx)
	first := <-ch
	if first.Clock != "25:00" {
		t.Fatalf("unexpected first state: %+v", first)
	}
	cancel()
	for range ch {
	}
}
