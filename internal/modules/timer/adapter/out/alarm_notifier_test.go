package out_test

import (
	"context"
	"testing"

	mediain "pomo/internal/modules/media/port/in"
	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	"pomo/internal/modules/timer/adapter/out"
	"pomo/internal/modules/timer/domain"
)

type stubSettings struct {
	settingsin.Usecase
	current settingsdto.SettingsOutput
}

func (s stubSettings) Get(context.Context) (settingsdto.SettingsOutput, error) {
	return s.current, nil
}

type stubMedia struct {
	mediain.Usecase
	played []string
}

func (m *stubMedia) PlayAlarm(_ context.Context, reference string) error {
	m.played = append(m.played, reference)
	return nil
}

func TestAlarmIsChosenByEndedMode(t *testing.T) {
	t.Parallel()
	settings := stubSettings{current: settingsdto.SettingsOutput{
		WorkAlarm:       "work.mp3",
		ShortBreakAlarm: "short.mp3",
		LongBreakAlarm:  "long.mp3",
	}}
	media := &stubMedia{}
	notifier := out.NewMediaAlarmNotifier(settings, media)

	for _, mode := range []domain.Mode{domain.ModeWork, domain.ModeShortBreak, domain.ModeLongBreak} {
		if err := notifier.IntervalCompleted(context.Background(), mode); err != nil {
			t.Fatalf("alarm for %s: %v", mode, err)
		}
	}
	want := []string{"work.mp3", "short.mp3", "long.mp3"}
	for i := range want {
		if media.played[i] != want[i] {
			t.Fatalf("alarm %d: want %s, got %s", i, want[i], media.played[i])
		}
	}
}
