package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"pomo/internal/modules/media/domain"
	mediaout "pomo/internal/modules/media/port/out"
	apperrors "pomo/internal/platform/errors"
	xlog "pomo/internal/platform/log"
)

// State is what SyncService needs from one timer snapshot.
type State struct {
	Seq     uint64
	Mode    string
	Running bool
	Focus   domain.Config
	Break   domain.Config
}

type Status struct {
	Class     domain.Class
	Source    domain.Source
	Volume    int
	Muted     bool
	Playing   bool
	LastError error
}

// SyncService keeps background media in step with the timer. It owns at most
// one live handle; the previous one is paused and closed before another is
// acquired.
type SyncService struct {
	mu        sync.Mutex
	player    mediaout.Player
	alarms    mediaout.AlarmPlayer
	assetsDir string
	logger    zerolog.Logger

	seen    bool
	lastSeq uint64
	running bool
	muted   bool
	class   domain.Class
	target  domain.Source

	// configVolume is the last volume seen in settings per class; volume is
	// the effective one, which SetVolume may override until settings change.
	configVolume map[domain.Class]int
	volume       map[domain.Class]int

	handle  mediaout.Handle
	source  domain.Source
	wantKey string
	playing bool
	lastErr error
	closed  bool
}

func NewSyncService(player mediaout.Player, alarms mediaout.AlarmPlayer, assetsDir string) *SyncService {
	return &SyncService{
		player:       player,
		alarms:       alarms,
		assetsDir:    assetsDir,
		logger:       xlog.WithComponent("media"),
		class:        domain.ClassFocus,
		configVolume: map[domain.Class]int{},
		volume:       map[domain.Class]int{},
	}
}

// OnStateChange applies one timer snapshot. Snapshots older than the last
// applied one are dropped.
func (s *SyncService) OnStateChange(ctx context.Context, state State) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.statusLocked(), nil
	}
	if s.seen && state.Seq < s.lastSeq {
		s.logger.Debug().Str("event", "media.stale_snapshot").Uint64("seq", state.Seq).Uint64("last_seq", s.lastSeq).Msg("dropped stale snapshot")
		return s.statusLocked(), nil
	}
	s.seen = true
	s.lastSeq = state.Seq
	s.running = state.Running
	s.class = domain.ClassFor(state.Mode)

	cfg := state.Focus
	if s.class == domain.ClassBreak {
		cfg = state.Break
	}
	volumeChanged := s.adoptVolumeLocked(s.class, domain.ClampVolume(cfg.Volume))

	var resolveErr error
	target, err := domain.Resolve(s.class, cfg, s.assetsDir)
	if err != nil {
		resolveErr = err
		target = domain.Fallback(s.class, s.assetsDir)
		s.logger.Warn().Err(err).Str("event", "media.fallback").Str("class", string(s.class)).Msg("invalid media reference, using bundled track")
	}
	s.target = target

	if s.handle != nil && s.wantKey != target.Key() {
		s.releaseLocked(ctx)
	}
	if s.handle != nil && volumeChanged {
		if err := s.handle.SetVolume(ctx, s.volume[s.class]); err != nil {
			s.logger.Warn().Err(err).Str("event", "media.volume_failed").Msg("set volume failed")
		}
	}

	err = s.applyLocked(ctx)
	if err == nil {
		err = resolveErr
	}
	s.lastErr = err
	return s.statusLocked(), err
}

// SetVolume applies to the live handle and is remembered for the active class.
func (s *SyncService) SetVolume(ctx context.Context, percent int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	percent = domain.ClampVolume(percent)
	s.volume[s.class] = percent
	if s.handle == nil {
		return s.statusLocked(), nil
	}
	if err := s.handle.SetVolume(ctx, percent); err != nil {
		s.lastErr = fmt.Errorf("set volume: %w", err)
		return s.statusLocked(), s.lastErr
	}
	return s.statusLocked(), nil
}

// ToggleMute pauses the live handle when muting and resumes playback on
// unmute if the timer was last seen running.
func (s *SyncService) ToggleMute(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	s.logger.Info().Str("event", "media.mute").Bool("muted", s.muted).Msg("mute toggled")
	if !s.seen || s.closed {
		return s.statusLocked(), nil
	}
	err := s.applyLocked(ctx)
	s.lastErr = err
	return s.statusLocked(), err
}

func (s *SyncService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// PlayAlarm plays an alarm file once. Relative references are resolved
// against the assets directory. Alarms ignore mute.
func (s *SyncService) PlayAlarm(ctx context.Context, reference string) error {
	if s.alarms == nil {
		return nil
	}
	location := domain.ResolvePath(reference, s.assetsDir)
	if location == "" {
		return fmt.Errorf("%w: empty alarm reference", apperrors.ErrInvalidMediaReference)
	}
	if err := s.alarms.PlayOnce(ctx, location); err != nil {
		return fmt.Errorf("play alarm: %w", err)
	}
	s.logger.Debug().Str("event", "media.alarm").Str("location", location).Msg("alarm played")
	return nil
}

// Close pauses and releases the live handle. Later snapshots are ignored.
func (s *SyncService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.releaseLocked(ctx)
	return nil
}

func (s *SyncService) applyLocked(ctx context.Context) error {
	if !s.running || s.muted {
		if s.handle != nil && s.playing {
			if err := s.handle.Pause(ctx); err != nil {
				s.logger.Warn().Err(err).Str("event", "media.pause_failed").Msg("pause failed")
			}
			s.playing = false
		}
		return nil
	}

	if s.handle == nil {
		if err := s.acquireLocked(ctx, s.target); err != nil {
			return err
		}
		if err := s.handle.SetVolume(ctx, s.volume[s.class]); err != nil {
			s.logger.Warn().Err(err).Str("event", "media.volume_failed").Msg("set volume failed")
		}
	}
	if s.playing {
		return nil
	}
	err := s.playLocked(ctx)
	if err == nil || s.source.Fallback {
		return err
	}

	// The chosen source would not start; swap in the bundled track but keep
	// the handle bound to the requested target so it is not retried every tick.
	wantKey := s.wantKey
	s.releaseLocked(ctx)
	fallback := domain.Fallback(s.class, s.assetsDir)
	handle, acqErr := s.player.Acquire(ctx, fallback)
	if acqErr != nil {
		s.logger.Error().Err(acqErr).Str("event", "media.unavailable").Str("class", string(s.class)).Msg("no playable media")
		return fmt.Errorf("%w: %v", apperrors.ErrPlaybackUnavailable, errors.Join(err, acqErr))
	}
	s.logger.Info().Str("event", "media.fallback").Str("class", string(s.class)).Msg("using bundled track after rejected play")
	s.handle, s.source, s.wantKey, s.playing = handle, fallback, wantKey, false
	if volErr := s.handle.SetVolume(ctx, s.volume[s.class]); volErr != nil {
		s.logger.Warn().Err(volErr).Str("event", "media.volume_failed").Msg("set volume failed")
	}
	if fbErr := s.playLocked(ctx); fbErr != nil {
		return fbErr
	}
	return err
}

// playLocked starts the live handle. A rejected play is followed by an
// explicit pause so the source is known to be silent.
func (s *SyncService) playLocked(ctx context.Context) error {
	if err := s.handle.Play(ctx); err != nil {
		s.logger.Warn().Err(err).Str("event", "media.play_rejected").Str("location", s.source.Location).Msg("playback rejected")
		if pauseErr := s.handle.Pause(ctx); pauseErr != nil {
			s.logger.Debug().Err(pauseErr).Msg("pause after rejected play")
		}
		s.playing = false
		return fmt.Errorf("%w: %v", apperrors.ErrPlaybackRejected, err)
	}
	s.playing = true
	s.logger.Info().Str("event", "media.play").Str("class", string(s.class)).Str("location", s.source.Location).Msg("playing")
	return nil
}

// acquireLocked retries once with the bundled track of the class before
// giving up. The handle stays bound to target even when the fallback is
// playing, so later snapshots for the same target reuse it.
func (s *SyncService) acquireLocked(ctx context.Context, target domain.Source) error {
	handle, err := s.player.Acquire(ctx, target)
	if err == nil {
		s.handle, s.source, s.wantKey, s.playing = handle, target, target.Key(), false
		return nil
	}
	s.logger.Warn().Err(err).Str("event", "media.acquire_failed").Str("location", target.Location).Msg("acquire failed")
	if target.Fallback {
		return fmt.Errorf("%w: %v", apperrors.ErrPlaybackUnavailable, err)
	}

	fallback := domain.Fallback(target.Class, s.assetsDir)
	handle, fbErr := s.player.Acquire(ctx, fallback)
	if fbErr != nil {
		s.logger.Error().Err(fbErr).Str("event", "media.unavailable").Str("class", string(target.Class)).Msg("no playable media")
		return fmt.Errorf("%w: %v", apperrors.ErrPlaybackUnavailable, errors.Join(err, fbErr))
	}
	s.logger.Info().Str("event", "media.fallback").Str("class", string(target.Class)).Msg("using bundled track")
	s.handle, s.source, s.wantKey, s.playing = handle, fallback, target.Key(), false
	return nil
}

// releaseLocked pauses before closing so the old source is silent before any
// new one starts.
func (s *SyncService) releaseLocked(ctx context.Context) {
	if s.handle == nil {
		return
	}
	if s.playing {
		if err := s.handle.Pause(ctx); err != nil {
			s.logger.Warn().Err(err).Str("event", "media.pause_failed").Msg("pause before release failed")
		}
	}
	if err := s.handle.Close(); err != nil {
		s.logger.Warn().Err(err).Str("event", "media.close_failed").Msg("close handle failed")
	}
	s.logger.Debug().Str("event", "media.released").Str("location", s.source.Location).Msg("handle released")
	s.handle = nil
	s.playing = false
	s.source = domain.Source{}
	s.wantKey = ""
}

func (s *SyncService) adoptVolumeLocked(class domain.Class, configured int) bool {
	prev, seen := s.configVolume[class]
	if seen && prev == configured {
		return false
	}
	s.configVolume[class] = configured
	changed := s.volume[class] != configured
	s.volume[class] = configured
	return changed
}

func (s *SyncService) statusLocked() Status {
	source := s.source
	if s.handle == nil {
		source = s.target
	}
	return Status{
		Class:     s.class,
		Source:    source,
		Volume:    s.volume[s.class],
		Muted:     s.muted,
		Playing:   s.playing,
		LastError: s.lastErr,
	}
}
