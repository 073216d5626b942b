package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	settingsout "pomo/internal/modules/settings/port/out"
	xlog "pomo/internal/platform/log"
)

const defaultDebounce = 300 * time.Millisecond

// FileWatcher watches the directory holding the settings file. Atomic saves
// replace the file, so watching the file itself would lose track of it after
// the first write.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: path, debounce: defaultDebounce, logger: xlog.WithComponent("settings.watcher")}
}

// WithDebounce overrides the quiet period before onChange fires.
func (w *FileWatcher) WithDebounce(d time.Duration) *FileWatcher {
	w.debounce = d
	return w
}

var _ settingsout.Watcher = (*FileWatcher)(nil)

func (w *FileWatcher) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}
	w.logger.Info().Str("event", "settings.watcher_started").Str("path", w.path).Msg("watching settings file")

	go w.loop(ctx, watcher, onChange)
	return nil
}

func (w *FileWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, onChange func()) {
	defer func() { _ = watcher.Close() }()

	name := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info().Str("event", "settings.watcher_stopped").Msg("settings watcher stopped")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("event", "settings.file_changed").Str("op", event.Op.String()).Msg("settings file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Str("event", "settings.watcher_error").Msg("settings watcher error")
		}
	}
}
