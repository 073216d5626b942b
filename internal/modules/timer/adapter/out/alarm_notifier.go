package out

import (
	"context"
	"fmt"

	mediain "pomo/internal/modules/media/port/in"
	settingsin "pomo/internal/modules/settings/port/in"
	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// MediaAlarmNotifier plays the alarm configured for the mode that just ended.
type MediaAlarmNotifier struct {
	settings settingsin.Usecase
	media    mediain.Usecase
}

func NewMediaAlarmNotifier(settings settingsin.Usecase, media mediain.Usecase) timerout.AlarmNotifier {
	return &MediaAlarmNotifier{settings: settings, media: media}
}

func (n *MediaAlarmNotifier) IntervalCompleted(ctx context.Context, ended domain.Mode) error {
	current, err := n.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load alarm settings: %w", err)
	}
	reference := current.WorkAlarm
	switch ended {
	case domain.ModeShortBreak:
		reference = current.ShortBreakAlarm
	case domain.ModeLongBreak:
		reference = current.LongBreakAlarm
	}
	return n.media.PlayAlarm(ctx, reference)
}
