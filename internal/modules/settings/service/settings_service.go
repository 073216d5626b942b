package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"pomo/internal/modules/settings/domain"
	settingsout "pomo/internal/modules/settings/port/out"
	xlog "pomo/internal/platform/log"
)

// SettingsService is the single settings repository. Every reader gets the
// in-memory copy; writes go through the store and notify subscribers.
type SettingsService struct {
	mu      sync.RWMutex
	store   settingsout.Store
	watcher settingsout.Watcher
	current domain.Settings
	loaded  bool
	logger  zerolog.Logger

	subsMu sync.Mutex
	subs   map[int]chan domain.Settings
	nextID int
}

func NewSettingsService(store settingsout.Store, watcher settingsout.Watcher) *SettingsService {
	return &SettingsService{
		store:   store,
		watcher: watcher,
		current: domain.Defaults(),
		logger:  xlog.WithComponent("settings"),
		subs:    map[int]chan domain.Settings{},
	}
}

func (s *SettingsService) Path() string {
	return s.store.Path()
}

// Current loads the store on first use.
func (s *SettingsService) Current(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.current, nil
	}
	s.mu.RUnlock()
	if _, err := s.Reload(ctx); err != nil {
		return domain.Settings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

// Update applies fn to a copy, normalizes, persists and publishes it.
func (s *SettingsService) Update(ctx context.Context, fn func(*domain.Settings) error) (domain.Settings, error) {
	if _, err := s.Current(ctx); err != nil {
		return domain.Settings{}, err
	}
	s.mu.Lock()
	next := s.current
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return domain.Settings{}, err
	}
	next = next.Normalize()
	if next == s.current {
		s.mu.Unlock()
		return next, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return domain.Settings{}, err
	}
	s.current = next
	s.mu.Unlock()

	s.logger.Info().Str("event", "settings.saved").Msg("settings saved")
	s.notify(next)
	return next, nil
}

// Reload re-reads the store. It reports whether anything changed; a failed
// load keeps the previous settings.
func (s *SettingsService) Reload(ctx context.Context) (bool, error) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("event", "settings.reload_failed").Msg("failed to load settings")
		return false, fmt.Errorf("load settings: %w", err)
	}
	loaded = loaded.Normalize()

	s.mu.Lock()
	changed := !s.loaded || loaded != s.current
	s.current = loaded
	s.loaded = true
	s.mu.Unlock()

	if changed {
		s.logger.Info().Str("event", "settings.reload_success").Msg("settings reloaded")
		s.notify(loaded)
	}
	return changed, nil
}

// Watch reloads on external edits until ctx is done.
func (s *SettingsService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Watch(ctx, func() {
		if _, err := s.Reload(ctx); err != nil {
			s.logger.Warn().Err(err).Str("event", "settings.auto_reload_failed").Msg("automatic reload failed")
		}
	})
}

func (s *SettingsService) Subscribe() (<-chan domain.Settings, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	ch := make(chan domain.Settings, 1)
	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

func (s *SettingsService) notify(settings domain.Settings) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- settings:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- settings:
			default:
				s.logger.Warn().Str("event", "settings.listener_skip").Msg("skipped notifying listener")
			}
		}
	}
}
