package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/platform/config"
	xlog "pomo/internal/platform/log"
	"pomo/internal/ui/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	noAudio   bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Pomodoro timer with background music",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "settings directory (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "history and log directory (default: $POMO_DATA_DIR or config dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.noAudio, "no-audio", false, "never start an audio player")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newThemesCmd())
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	return config.New(config.Options{
		ConfigDir: flags.configDir,
		DataDir:   flags.dataDir,
		LogLevel:  flags.logLevel,
		NoAudio:   flags.noAudio,
	})
}

func loadApp(flags *globalFlags) (config.Config, *bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return config.Config{}, nil, err
	}
	xlog.Configure(xlog.Config{Level: cfg.LogLevel})
	app, err := bootstrap.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, app, nil
}

func runTUI(ctx context.Context, flags *globalFlags) error {
	cfg, app, err := loadApp(flags)
	if err != nil {
		return err
	}
	return bootstrap.RunTUI(ctx, cfg, app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var mode string
	var cycles int
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the countdown without a UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cycles < 0 {
				return fmt.Errorf("--cycles must not be negative")
			}
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := app.Settings.Watch(ctx); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "settings hot reload disabled: %v\n", err)
			}
			go bootstrap.FollowSettings(ctx, app.Timer, app.Settings, app.Media)

			out := cmd.OutOrStdout()
			last, err := app.TimerCLI.Run(ctx, timerinadapter.RunInput{Mode: mode, Cycles: cycles}, func(state timerdto.StateOutput) {
				printState(out, state)
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "stopped at %s in %s after %d completed focus intervals\n", last.Clock, last.ModeLabel, last.CompletedWorkCycles)
			return nil
		},
	}
	run.Flags().StringVar(&mode, "mode", "", "starting mode: work|short|long")
	run.Flags().IntVar(&cycles, "cycles", 0, "stop after N completed focus intervals (0 runs until interrupted)")
	return run
}

// printState writes one countdown line and sets the terminal title with an
// OSC 0 escape.
func printState(w io.Writer, state timerdto.StateOutput) {
	if state.Completed != nil {
		verb := "complete"
		if state.Completed.Skipped {
			verb = "skipped"
		}
		_, _ = fmt.Fprintf(w, "-- %s %s, %d focus intervals done\n", state.Completed.From, verb, state.Completed.CompletedWorkCycles)
	}
	_, _ = fmt.Fprintf(w, "\x1b]0;%s\a%s  %s\n", state.Title, state.Clock, state.ModeLabel)
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Read and change settings"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every setting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			entries, err := app.SettingsCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Key, e.Value)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:               "get <key>",
		Short:             "Print one setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			value, err := app.SettingsCLI.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Change one setting",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeKeys(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			value, err := app.SettingsCLI.Set(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.SettingsPath)
			return nil
		},
	})
	return cfgCmd
}

func completeKeys(flags *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		_, app, err := loadApp(flags)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer func() { _ = app.Close() }()
		return app.SettingsCLI.Keys(), cobra.ShellCompDirectiveNoFileComp
	}
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recently ended intervals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			intervals, err := app.HistoryCLI.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(intervals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no intervals")
				return nil
			}
			for _, iv := range intervals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-10s\t%-9s\t%2dmin\tcycles=%d\n",
					iv.EndedAt.Local().Format("2006-01-02 15:04"), iv.Mode, iv.Outcome, iv.PlannedSeconds/60, iv.CompletedWorkCycles)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 0, "number of intervals to show (default 20)")
	return history
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var day string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarise one day of focus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			s, err := app.HistoryCLI.Stats(cmd.Context(), day)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day: %s\nfocus intervals: %d\nbreaks: %d\nskipped: %d\nfocus minutes: %d\n",
				s.Day.Format("2006-01-02"), s.CompletedWork, s.CompletedBreaks, s.Skipped, s.FocusMinutes)
			return nil
		},
	}
	stats.Flags().StringVar(&day, "day", "", "day as YYYY-MM-DD (default today)")
	return stats
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List colour themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range theme.Names() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
