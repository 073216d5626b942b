package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "pomo/internal/modules/history/adapter/in"
	historyoutadapter "pomo/internal/modules/history/adapter/out"
	historyservice "pomo/internal/modules/history/service"
	historyusecase "pomo/internal/modules/history/usecase"
	mediaoutadapter "pomo/internal/modules/media/adapter/out"
	mediain "pomo/internal/modules/media/port/in"
	mediaout "pomo/internal/modules/media/port/out"
	mediaservice "pomo/internal/modules/media/service"
	mediausecase "pomo/internal/modules/media/usecase"
	settingsinadapter "pomo/internal/modules/settings/adapter/in"
	settingsoutadapter "pomo/internal/modules/settings/adapter/out"
	settingsin "pomo/internal/modules/settings/port/in"
	settingsservice "pomo/internal/modules/settings/service"
	settingsusecase "pomo/internal/modules/settings/usecase"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	"pomo/internal/modules/timer/domain"
	timerin "pomo/internal/modules/timer/port/in"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	"pomo/internal/platform/id"
	xlog "pomo/internal/platform/log"
	uiapp "pomo/internal/ui/app"
)

const mpvBinary = "mpv"

type App struct {
	TimerCLI    timerinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler

	Timer    timerin.Usecase
	Media    mediain.Usecase
	Settings settingsin.Usecase

	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	ctx := context.Background()
	clk := clock.SystemClock{}

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewYAMLStore(cfg.SettingsPath),
		settingsoutadapter.NewFileWatcher(cfg.SettingsPath),
	))
	current, err := settingsUC.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	intervalStore, err := historyoutadapter.NewSQLiteIntervalStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new interval store: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(clk, id.UUID{}, intervalStore))

	var player interface {
		mediaout.Player
		mediaout.AlarmPlayer
	}
	if cfg.NoAudio {
		player = mediaoutadapter.NewSilentPlayer()
	} else {
		player = mediaoutadapter.NewMPVPlayer(mpvBinary, cfg.SocketDir)
	}
	mediaUC := mediausecase.NewInteractor(mediaservice.NewSyncService(player, player, cfg.AssetsDir))

	durations := domain.Durations{
		WorkMinutes:       current.WorkMinutes,
		ShortBreakMinutes: current.ShortBreakMinutes,
		LongBreakMinutes:  current.LongBreakMinutes,
		LongBreakInterval: current.LongBreakInterval,
	}
	if err := durations.Validate(); err != nil {
		durations = domain.DefaultDurations()
	}
	timerSvc := timerservice.NewTimerService(
		clk,
		clock.TickerScheduler{},
		durations,
		timeroutadapter.NewMediaAlarmNotifier(settingsUC, mediaUC),
		timeroutadapter.NewHistoryRecorder(historyUC),
	)
	timerSvc.SetPolicy(timerservice.Policy{AutoStartBreaks: current.AutoStartBreaks, AutoStartWork: current.AutoStartWork})
	timerUC := timerusecase.NewInteractor(timerSvc)

	return &App{
		TimerCLI:    timerinadapter.NewCLIHandler(timerUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		Timer:       timerUC,
		Media:       mediaUC,
		Settings:    settingsUC,
		closers: []func() error{
			timerUC.Close,
			func() error { return mediaUC.Close(context.Background()) },
			intervalStore.Close,
		},
	}, nil
}

// Close stops the timer first so no interval is recorded after the store
// has been closed.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI owns the terminal until the user quits, so logs are redirected to
// the log file for the duration.
func RunTUI(ctx context.Context, cfg config.Config, app *App) error {
	logFile, err := xlog.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Output: logFile})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := app.Settings.Watch(ctx); err != nil {
		logger := xlog.WithComponent("bootstrap")
		logger.Warn().Err(err).Str("event", "settings.watch_failed").Msg("settings hot reload disabled")
	}

	model := uiapp.NewModel(ctx, app.Timer, app.Media, app.Settings)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return errors.Join(err, app.Close())
}
