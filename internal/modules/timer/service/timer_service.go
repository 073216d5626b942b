package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
	xlog "pomo/internal/platform/log"
)

const tickInterval = time.Second

const (
	OutcomeCompleted = "completed"
	OutcomeSkipped   = "skipped"
)

// Policy decides whether the next interval starts on its own after an
// interval expires. Manual skips never auto-start.
type Policy struct {
	AutoStartBreaks bool
	AutoStartWork   bool
}

// TimerService drives an Engine with a cancellable one-second schedule and
// publishes a snapshot after every change.
type TimerService struct {
	mu        sync.Mutex
	engine    *domain.Engine
	clock     clock.Clock
	scheduler clock.Scheduler
	alarms    timerout.AlarmNotifier
	recorder  timerout.IntervalRecorder
	logger    zerolog.Logger
	policy    Policy

	cancelTick clock.Cancel
	generation uint64
	seq        uint64
	subs       map[int]chan domain.Snapshot
	nextSub    int
	closed     bool
}

func NewTimerService(clk clock.Clock, scheduler clock.Scheduler, durations domain.Durations, alarms timerout.AlarmNotifier, recorder timerout.IntervalRecorder) *TimerService {
	return &TimerService{
		engine:    domain.NewEngine(durations),
		clock:     clk,
		scheduler: scheduler,
		alarms:    alarms,
		recorder:  recorder,
		logger:    xlog.WithComponent("timer"),
		subs:      map[int]chan domain.Snapshot{},
	}
}

// effect runs after the lock is released.
type effect func(ctx context.Context)

func (s *TimerService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(nil)
}

func (s *TimerService) Durations() domain.Durations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Durations()
}

func (s *TimerService) SetPolicy(policy Policy) {
	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
}

func (s *TimerService) Start() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *TimerService) Pause() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseLocked()
}

// Toggle decides between start and pause under the same lock that applies
// it, so concurrent toggles alternate.
func (s *TimerService) Toggle() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.State().Running {
		return s.pauseLocked()
	}
	return s.startLocked()
}

func (s *TimerService) startLocked() domain.Snapshot {
	if s.engine.Start() {
		s.armLocked()
	}
	return s.publishLocked(nil)
}

func (s *TimerService) pauseLocked() domain.Snapshot {
	s.disarmLocked()
	s.engine.Pause()
	return s.publishLocked(nil)
}

func (s *TimerService) Reset() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
	s.engine.Reset()
	return s.publishLocked(nil)
}

func (s *TimerService) SetMode(mode domain.Mode) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
	s.engine.SetMode(mode)
	return s.publishLocked(nil)
}

func (s *TimerService) Skip(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	s.disarmLocked()
	planned := s.engine.Durations().Seconds(s.engine.State().Mode)
	transition := s.engine.Skip()
	effects := s.transitionEffectsLocked(transition, planned)
	snap := s.publishLocked(&transition)
	s.mu.Unlock()

	s.run(ctx, effects)
	return snap
}

// UpdateDurations leaves the running flag untouched, so an armed schedule
// keeps ticking against the recomputed remaining time.
func (s *TimerService) UpdateDurations(durations domain.Durations) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.UpdateDurations(durations)
	return s.publishLocked(nil)
}

// Subscribe returns a channel that always holds the newest snapshot. Slow
// readers skip intermediate states instead of blocking the timer.
func (s *TimerService) Subscribe() (<-chan domain.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan domain.Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked(nil)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops ticking and closes every subscription.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.disarmLocked()
	s.engine.Pause()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *TimerService) onTick(generation uint64) {
	s.mu.Lock()
	if generation != s.generation || !s.engine.State().Running {
		s.mu.Unlock()
		return
	}
	ended := s.engine.State().Mode
	planned := s.engine.Durations().Seconds(ended)
	transition, completed := s.engine.Tick()
	if !completed {
		s.publishLocked(nil)
		s.mu.Unlock()
		return
	}

	s.disarmLocked()
	effects := s.transitionEffectsLocked(transition, planned)
	effects = append(effects, func(ctx context.Context) {
		if s.alarms == nil {
			return
		}
		if err := s.alarms.IntervalCompleted(ctx, ended); err != nil {
			s.logger.Warn().Err(err).Str("event", "timer.alarm_failed").Str("mode", string(ended)).Msg("alarm playback failed")
		}
	})
	if s.autoStartLocked(transition.To) {
		s.engine.Start()
		s.armLocked()
	}
	s.publishLocked(&transition)
	s.mu.Unlock()

	s.run(context.Background(), effects)
}

func (s *TimerService) autoStartLocked(next domain.Mode) bool {
	if next.IsBreak() {
		return s.policy.AutoStartBreaks
	}
	return s.policy.AutoStartWork
}

func (s *TimerService) transitionEffectsLocked(transition domain.Transition, planned int) []effect {
	outcome := OutcomeCompleted
	if transition.Skipped {
		outcome = OutcomeSkipped
	}
	record := dto.IntervalRecord{
		Mode:                string(transition.From),
		PlannedSeconds:      planned,
		Outcome:             outcome,
		EndedAt:             s.clock.Now(),
		CompletedWorkCycles: transition.CompletedWorkCycles,
	}
	s.logger.Info().
		Str("event", "timer.interval_"+outcome).
		Str("from", string(transition.From)).
		Str("to", string(transition.To)).
		Int("cycles", transition.CompletedWorkCycles).
		Msg("interval ended")
	return []effect{func(ctx context.Context) {
		if s.recorder == nil {
			return
		}
		if err := s.recorder.Record(ctx, record); err != nil {
			s.logger.Warn().Err(err).Str("event", "timer.record_failed").Msg("record interval")
		}
	}}
}

func (s *TimerService) run(ctx context.Context, effects []effect) {
	for _, fn := range effects {
		fn(ctx)
	}
}

func (s *TimerService) armLocked() {
	if s.closed {
		s.engine.Pause()
		return
	}
	s.disarmLocked()
	generation := s.generation
	s.cancelTick = s.scheduler.Every(tickInterval, func() { s.onTick(generation) })
}

// disarmLocked bumps the generation first: a callback already waiting on the
// mutex sees a stale generation and drops itself.
func (s *TimerService) disarmLocked() {
	s.generation++
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
		s.logger.Debug().Str("event", "timer.tick_cancelled").Msg("tick schedule cancelled")
	}
}

func (s *TimerService) publishLocked(transition *domain.Transition) domain.Snapshot {
	s.seq++
	snap := s.snapshotLocked(transition)
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	return snap
}

func (s *TimerService) snapshotLocked(transition *domain.Transition) domain.Snapshot {
	state := s.engine.State()
	return domain.Snapshot{
		State:        state,
		TotalSeconds: s.engine.Durations().Seconds(state.Mode),
		Seq:          s.seq,
		Transition:   transition,
	}
}
