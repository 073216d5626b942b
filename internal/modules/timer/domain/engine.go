package domain

// State is the engine's mutable record.
type State struct {
	Mode                Mode
	SecondsRemaining    int
	Running             bool
	CompletedWorkCycles int
}

// Transition describes one mode advance.
type Transition struct {
	From                Mode
	To                  Mode
	CompletedWorkCycles int
	Skipped             bool
}

// Engine is the work/short/long break state machine. It is not safe for
// concurrent use; the timer service serializes access.
type Engine struct {
	durations Durations
	state     State
}

func NewEngine(durations Durations) *Engine {
	e := &Engine{durations: normalize(durations)}
	e.state = State{
		Mode:             ModeWork,
		SecondsRemaining: e.durations.Seconds(ModeWork),
	}
	return e
}

func (e *Engine) State() State         { return e.state }
func (e *Engine) Durations() Durations { return e.durations }

// Start reports whether the engine transitioned from paused to running.
func (e *Engine) Start() bool {
	if e.state.Running {
		return false
	}
	e.state.Running = true
	return true
}

// Pause reports whether the engine was running.
func (e *Engine) Pause() bool {
	was := e.state.Running
	e.state.Running = false
	return was
}

func (e *Engine) Reset() {
	e.state.SecondsRemaining = e.durations.Seconds(e.state.Mode)
	e.state.Running = false
}

// SetMode is the manual override path: it never touches the cycle count.
func (e *Engine) SetMode(mode Mode) {
	e.state.Mode = mode
	e.state.SecondsRemaining = e.durations.Seconds(mode)
	e.state.Running = false
}

// Tick advances the countdown by one second. The second return value is true
// when the interval completed and the mode advanced.
func (e *Engine) Tick() (Transition, bool) {
	if !e.state.Running {
		return Transition{}, false
	}
	if e.state.SecondsRemaining > 1 {
		e.state.SecondsRemaining--
		return Transition{}, false
	}
	e.state.SecondsRemaining = 0
	e.state.Running = false
	return e.advance(false), true
}

func (e *Engine) Skip() Transition {
	t := e.advance(true)
	e.state.Running = false
	return t
}

// UpdateDurations only recomputes the active mode; inactive modes pick up the
// new values the next time they become active.
func (e *Engine) UpdateDurations(durations Durations) {
	e.durations = normalize(durations)
	e.state.SecondsRemaining = e.durations.Seconds(e.state.Mode)
}

func (e *Engine) advance(skipped bool) Transition {
	from := e.state.Mode
	next := ModeWork
	if from == ModeWork {
		e.state.CompletedWorkCycles++
		if e.state.CompletedWorkCycles%e.durations.LongBreakInterval == 0 {
			next = ModeLongBreak
		} else {
			next = ModeShortBreak
		}
	}
	e.state.Mode = next
	e.state.SecondsRemaining = e.durations.Seconds(next)
	return Transition{
		From:                from,
		To:                  next,
		CompletedWorkCycles: e.state.CompletedWorkCycles,
		Skipped:             skipped,
	}
}

// normalize keeps the long-break modulus defined.
func normalize(d Durations) Durations {
	if d.LongBreakInterval < 1 {
		d.LongBreakInterval = 1
	}
	return d
}
