package timer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/ticker"
)

// DefaultPrepareDuration is the warm-up before the first work phase.
const DefaultPrepareDuration = 5 * time.Second

// ErrInvalidConfig indicates the interval config cannot start a session.
var ErrInvalidConfig = errors.New("invalid interval config")

// Countdown starts and cancels phase countdowns.
type Countdown interface {
	Start(duration time.Duration) ticker.Handle
	Cancel(handle ticker.Handle)
}

// SoundPlayer plays cues. Play stops the current cue before starting the next.
type SoundPlayer interface {
	Play(cue Cue) error
	Release() error
}

// Observer receives a snapshot after every state change.
type Observer func(State)

// Options contains the collaborators of an Engine.
type Options struct {
	PrepareDuration time.Duration
	Countdown       Countdown
	Sound           SoundPlayer
	Observer        Observer
	Logger          *slog.Logger
}

// Engine is the interval timer state machine. It never blocks and is not
// safe for concurrent use; callers serialize access to one engine.
type Engine struct {
	config   model.TimeIntervalConfig
	options  Options
	state    State
	cues     CueScheduler
	handle   ticker.Handle
	started  bool
	ended    bool
	released bool
}

// New validates config and creates an engine in the Prepare phase.
func New(config model.TimeIntervalConfig, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if options.Countdown == nil {
		return nil, errors.New("timer engine requires a countdown")
	}
	if options.PrepareDuration <= 0 {
		options.PrepareDuration = DefaultPrepareDuration
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := &Engine{
		config:  config,
		options: options,
		cues:    NewCueScheduler(),
	}
	engine.state = State{
		Phase:              PhasePrepare,
		Remaining:          options.PrepareDuration,
		PhaseDuration:      options.PrepareDuration,
		RemainingIntervals: config.Intervals,
		CueCountdown:       engine.cues.Countdown(),
	}
	return engine, nil
}

// Start begins the Prepare countdown. Only the first call has an effect.
func (engine *Engine) Start() {
	if engine.started || engine.ended {
		return
	}
	engine.started = true
	engine.beginCountdown(engine.state.Remaining)
	engine.notify()
}

// State returns the current snapshot.
func (engine *Engine) State() State {
	return engine.state
}

// Config returns the interval config the session was started with.
func (engine *Engine) Config() model.TimeIntervalConfig {
	return engine.config
}

// Ended reports whether the session has been torn down.
func (engine *Engine) Ended() bool {
	return engine.ended
}

// HandleEvent dispatches a ticker event. It reports whether state changed.
func (engine *Engine) HandleEvent(event ticker.Event) bool {
	if event.Finished {
		return engine.HandleFinished(event.Handle)
	}
	return engine.HandleTick(event.Handle, event.Remaining)
}

// HandleTick applies a countdown tick from the countdown identified by handle.
// Ticks from cancelled or finished countdowns are ignored.
func (engine *Engine) HandleTick(handle ticker.Handle, remaining time.Duration) bool {
	if !engine.accepts(handle) {
		return false
	}

	if remaining < 0 {
		remaining = 0
	}
	if remaining > engine.state.PhaseDuration {
		remaining = engine.state.PhaseDuration
	}
	engine.state.Remaining = remaining
	engine.state.Progress = engine.progress()

	if cue, ok := engine.cues.PreEndCue(engine.state.Phase, remaining); ok {
		engine.play(cue)
	}
	engine.state.CueCountdown = engine.cues.Countdown()

	engine.notify()
	return true
}

// HandleFinished moves to the next phase once the current countdown ran out.
func (engine *Engine) HandleFinished(handle ticker.Handle) bool {
	if !engine.accepts(handle) {
		return false
	}
	engine.handle = 0

	engine.state.Remaining = 0
	engine.state.Progress = 1
	engine.state.Running = false
	engine.notify()

	from := engine.state.Phase
	next := engine.nextPhase()
	if cue, ok := FinishedCue(from, next); ok {
		engine.play(cue)
	}

	switch next {
	case PhaseWork:
		engine.enterPhase(PhaseWork, engine.config.Work)
	case PhaseRest:
		engine.state.RemainingIntervals--
		engine.enterPhase(PhaseRest, engine.config.Rest)
	case PhaseDone:
		engine.state.RemainingIntervals = 0
		engine.state.Phase = PhaseDone
		engine.state.PhaseDuration = 0
		engine.cues.Reset()
		engine.state.CueCountdown = engine.cues.Countdown()
	}

	engine.options.Logger.Info("phase finished",
		"from", string(from),
		"to", string(engine.state.Phase),
		"remaining_intervals", engine.state.RemainingIntervals,
	)
	engine.notify()
	return true
}

// PauseOrResume toggles the countdown. Resuming continues from the frozen
// remaining time. It does nothing once the session is Done or ended.
func (engine *Engine) PauseOrResume() bool {
	if engine.ended || !engine.started || engine.state.Phase == PhaseDone {
		return false
	}

	if engine.state.Running {
		engine.cancelCountdown()
		engine.state.Running = false
	} else {
		engine.beginCountdown(engine.state.Remaining)
	}
	engine.notify()
	return true
}

// RequestEnd ends the session when forced or already Done. Otherwise it
// leaves the timer running and asks the caller to confirm.
func (engine *Engine) RequestEnd(force bool) EndOutcome {
	if engine.ended {
		return EndSession
	}
	if !force && engine.state.Phase != PhaseDone {
		return EndNeedsConfirmation
	}

	engine.cancelCountdown()
	engine.state.Running = false
	engine.ended = true
	engine.releaseSound()
	engine.notify()
	return EndSession
}

func (engine *Engine) nextPhase() Phase {
	switch engine.state.Phase {
	case PhaseWork:
		if engine.state.RemainingIntervals <= 1 {
			return PhaseDone
		}
		return PhaseRest
	case PhaseDone:
		return PhaseDone
	default:
		return PhaseWork
	}
}

func (engine *Engine) accepts(handle ticker.Handle) bool {
	if engine.ended || engine.state.Phase == PhaseDone {
		return false
	}
	return engine.handle != 0 && handle == engine.handle
}

func (engine *Engine) enterPhase(phase Phase, duration time.Duration) {
	engine.state.Phase = phase
	engine.state.PhaseDuration = duration
	engine.state.Remaining = duration
	engine.state.Progress = engine.progress()
	engine.cues.Reset()
	engine.state.CueCountdown = engine.cues.Countdown()
	engine.beginCountdown(duration)
}

func (engine *Engine) beginCountdown(duration time.Duration) {
	engine.handle = engine.options.Countdown.Start(duration)
	engine.state.Running = true
}

func (engine *Engine) cancelCountdown() {
	if engine.handle == 0 {
		return
	}
	engine.options.Countdown.Cancel(engine.handle)
	engine.handle = 0
}

func (engine *Engine) progress() float64 {
	if engine.state.Phase == PhaseDone {
		return 1
	}
	total := engine.state.PhaseDuration
	if total <= 0 {
		return 1
	}
	return 1 - float64(engine.state.Remaining)/float64(total)
}

func (engine *Engine) play(cue Cue) {
	if engine.options.Sound == nil {
		return
	}
	if err := engine.options.Sound.Play(cue); err != nil {
		engine.options.Logger.Warn("play cue", "cue", string(cue), "error", err)
	}
}

func (engine *Engine) releaseSound() {
	if engine.released || engine.options.Sound == nil {
		engine.released = true
		return
	}
	engine.released = true
	if err := engine.options.Sound.Release(); err != nil {
		engine.options.Logger.Warn("release sound player", "error", err)
	}
}

func (engine *Engine) notify() {
	if engine.options.Observer != nil {
		engine.options.Observer(engine.state)
	}
}
