package bootstrap

import (
	"context"

	mediadto "pomo/internal/modules/media/dto"
	mediain "pomo/internal/modules/media/port/in"
	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	timerdto "pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	xlog "pomo/internal/platform/log"
)

// FollowSettings keeps the timer and media in step with settings and timer
// snapshots until ctx is done. The TUI model does the same work itself, so
// only headless commands run this loop.
func FollowSettings(ctx context.Context, timer timerin.Usecase, settings settingsin.Usecase, media mediain.Usecase) {
	logger := xlog.WithComponent("headless")
	current, err := settings.Get(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("event", "settings.load_failed").Msg("using default settings")
	}
	states, stopStates := timer.Subscribe(ctx)
	updates, stopSettings := settings.Subscribe(ctx)
	defer stopStates()
	defer stopSettings()

	var last timerdto.StateOutput
	syncMedia := func() {
		if last.Mode == "" {
			return
		}
		if _, err := media.OnStateChange(ctx, mediaInput(last, current)); err != nil {
			logger.Warn().Err(err).Str("event", "media.sync_failed").Uint64("seq", last.Seq).Msg("media sync failed")
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			last = state
			syncMedia()
		case next, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			prev := current
			current = next
			if durationsOf(prev) != durationsOf(next) {
				if _, err := timer.UpdateDurations(ctx, durationsOf(next)); err != nil {
					logger.Warn().Err(err).Str("event", "timer.durations_rejected").Msg("durations not applied")
				}
			}
			if err := timer.UpdatePolicy(ctx, timerdto.PolicyInput{AutoStartBreaks: next.AutoStartBreaks, AutoStartWork: next.AutoStartWork}); err != nil {
				logger.Warn().Err(err).Str("event", "timer.policy_rejected").Msg("policy not applied")
			}
			syncMedia()
		}
	}
}

func durationsOf(s settingsdto.SettingsOutput) timerdto.DurationsInput {
	return timerdto.DurationsInput{
		WorkMinutes:       s.WorkMinutes,
		ShortBreakMinutes: s.ShortBreakMinutes,
		LongBreakMinutes:  s.LongBreakMinutes,
		LongBreakInterval: s.LongBreakInterval,
	}
}

func mediaInput(state timerdto.StateOutput, settings settingsdto.SettingsOutput) mediadto.StateInput {
	return mediadto.StateInput{
		Seq:     state.Seq,
		Mode:    state.Mode,
		Running: state.Running,
		Focus:   configInput(settings.FocusMusic),
		Break:   configInput(settings.BreakMusic),
	}
}

func configInput(m settingsdto.MusicOutput) mediadto.ConfigInput {
	return mediadto.ConfigInput{Kind: m.Kind, Reference: m.Reference, Volume: m.Volume}
}
